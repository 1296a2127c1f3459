// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/contract"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/explorer"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/models"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/utils"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/version"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const maxVerificationChecks = 10

var errVerificationPending = errors.New("verification still pending")

// verify submits the source of the deployed contract to the network explorer,
// and polls until the explorer reports an outcome
func verify(
	ctx context.Context,
	apiKey string,
	pollInterval time.Duration,
	factory *contract.Factory,
	result *models.DeploymentResult,
	args []interface{},
) error {
	ctx = contextOrBackground(ctx)
	network := factory.Network()
	if !network.HasExplorer() {
		return fmt.Errorf("network %s has no explorer configured", network.Name)
	}
	if flags.sourcePath == "" {
		return fmt.Errorf("--source is required for verification")
	}
	source, err := afero.ReadFile(app.FS, flags.sourcePath)
	if err != nil {
		return fmt.Errorf("failure reading source %s: %w", flags.sourcePath, err)
	}
	compilerVersion, err := version.NormalizeCompilerVersion(flags.compilerVersion)
	if err != nil {
		return err
	}
	packedArgs, err := factory.PackConstructorArgs(args...)
	if err != nil {
		return err
	}
	name := flags.contractName
	if name == "" {
		artifact := factory.Artifact()
		name = fmt.Sprintf("%s:%s", artifact.SourceName, artifact.ContractName)
	}
	client := explorer.NewClient(network.ExplorerAPIBase, apiKey)
	apiCtx, cancel := utils.GetAPIContext(ctx)
	defer cancel()
	guid, err := client.Verify(apiCtx, explorer.VerificationRequest{
		Address:         result.ContractAddress,
		ContractName:    name,
		CompilerVersion: compilerVersion,
		SourceCode:      string(source),
		ConstructorArgs: packedArgs,
	})
	if err != nil {
		return err
	}
	app.Log.Info("verification submitted", zap.String("guid", guid))
	for i := 0; i < maxVerificationChecks; i++ {
		checkCtx, checkCancel := utils.GetAPIContext(ctx)
		status, err := client.CheckStatus(checkCtx, guid)
		checkCancel()
		if err != nil {
			return err
		}
		if status != explorer.StatusPending {
			app.Log.Info("verification finished", zap.String("status", status))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return fmt.Errorf("%w: guid %s", errVerificationPending, guid)
}
