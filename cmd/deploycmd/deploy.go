// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/application"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/clierrors"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/cobrautils"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/contract"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/deployer"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/reporter"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/resolver"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/ux"
	"github.com/chelnak/ysmrr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var app *application.Deployer

type deployFlags struct {
	artifactPath    string
	network         string
	constructorArgs string
	timeoutMs       int64
	verify          bool
	sourcePath      string
	compilerVersion string
	contractName    string
}

var flags deployFlags

// deployer deploy
func NewCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a compiled contract artifact",
		Long: `The deploy command publishes the contract creation transaction of a compiled
artifact (hardhat or foundry json) to the selected network, waits for it to be
confirmed and prints the deployed contract address.

The signing key is taken from PRIVATE_KEY, or from the network profile given on
the config file. The fuji network uses RPC_URL when set.`,
		RunE: deploy,
		Args: cobrautils.ExactArgs(0),
	}
	cmd.Flags().StringVar(&flags.artifactPath, "artifact", "", "path to the compiled contract artifact json")
	cmd.Flags().StringVar(&flags.network, "network", "", "network profile to deploy to (defaults to NETWORK_NAME, or fuji)")
	cmd.Flags().StringVar(&flags.constructorArgs, "args", "", "comma separated constructor arguments")
	cmd.Flags().Int64Var(&flags.timeoutMs, "timeout-ms", -1, "confirmation timeout in milliseconds, 0 waits indefinitely (defaults to CONFIRMATION_TIMEOUT_MS)")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "verify the contract source on the network block explorer")
	cmd.Flags().StringVar(&flags.sourcePath, "source", "", "solidity standard json input used for verification")
	cmd.Flags().StringVar(&flags.compilerVersion, "compiler-version", "", "solc version used for verification, eg v0.8.24+commit.e11b9ed9")
	cmd.Flags().StringVar(&flags.contractName, "contract-name", "", "fully qualified contract name used for verification (defaults to <sourceName>:<contractName>)")
	_ = cmd.MarkFlagRequired("artifact")
	return cmd
}

func deploy(cmd *cobra.Command, _ []string) error {
	ul := ux.NewUserLog(app.Log, cmd.OutOrStdout())
	rep := reporter.New(ul)
	fail := func(err error) error {
		rep.Report(nil, err)
		return cobrautils.NewReportedError(err)
	}

	conf, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout-ms") {
		if flags.timeoutMs < 0 {
			return fmt.Errorf("--timeout-ms must not be negative, got %d", flags.timeoutMs)
		}
		conf.ConfirmationTimeout = time.Duration(flags.timeoutMs) * time.Millisecond
	}

	network, credential, err := resolver.New(conf).Resolve(flags.network)
	if err != nil {
		return fail(err)
	}
	app.Log.Info("network resolved",
		zap.String("network", network.Name),
		zap.String("rpc", network.RPCEndpoint),
		zap.Uint64("chainID", network.ChainID),
		zap.Stringer("deployer", credential.Address()),
	)

	artifact, err := contract.LoadArtifact(app.FS, flags.artifactPath)
	if err != nil {
		return fail(clierrors.NewBindError(clierrors.ErrMalformedArtifact, err))
	}
	factory, err := contract.Bind(artifact, network, credential)
	if err != nil {
		return fail(err)
	}
	args, err := contract.ParseConstructorArgs(factory.ABI(), contract.SplitArgs(flags.constructorArgs))
	if err != nil {
		return fail(clierrors.NewBindError(clierrors.ErrMalformedArtifact, err))
	}

	ul.PrintToUser("Deploying %s to %s from %s", contractName(artifact), network, credential.Address().Hex())

	var (
		spinner  *ux.UserSpinner
		waitSpin *ysmrr.Spinner
	)
	interactive := cmd.OutOrStdout() == os.Stdout
	orchestrator := deployer.New(
		deployer.WithDialer(app.Dial),
		deployer.WithLogger(app.Log),
		deployer.WithPollInterval(conf.PollInterval),
		deployer.WithConfirmationTimeout(conf.ConfirmationTimeout),
		deployer.WithOnSubmitted(func(result models.DeploymentResult) {
			if !interactive {
				ul.PrintToUser("Transaction %s submitted, waiting for confirmation", result.TransactionHash.Hex())
				return
			}
			spinner = ux.NewUserSpinner(ul)
			waitSpin = spinner.SpinToUser("Waiting for confirmation of tx %s", result.TransactionHash.Hex())
		}),
	)
	defer orchestrator.Close()

	result, err := orchestrator.Deploy(contextOrBackground(cmd.Context()), deployer.NewRequest(factory, args...))
	if spinner != nil {
		if err != nil {
			spinner.SpinFailWithError(waitSpin, "", clierrors.Kind(err))
		} else {
			spinner.SpinComplete(waitSpin)
		}
		spinner.Stop()
	}
	rep.Report(result, err)
	if err != nil {
		return cobrautils.NewReportedError(err)
	}

	if flags.verify {
		if err := verify(cmd.Context(), conf.ExplorerAPIKey, conf.PollInterval, factory, result, args); err != nil {
			// the contract is deployed, a failed verification does not fail the run
			app.Log.Warn("verification failed", zap.Error(err))
			rep.Warn("Source verification failed: %s", err)
		} else if url := network.AddressURL(result.ContractAddress); url != "" {
			rep.Info("Source verified, see %s", url)
		} else {
			rep.Info("Source verified")
		}
	}
	return nil
}

func contractName(artifact *contract.Artifact) string {
	if artifact.ContractName == "" {
		return "contract"
	}
	return artifact.ContractName
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
