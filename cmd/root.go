// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"

	"github.com/ava-labs/avalanche-contract-deployer/cmd/deploycmd"
	"github.com/ava-labs/avalanche-contract-deployer/cmd/networkcmd"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/application"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/cobrautils"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/constants"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/ux"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	app *application.Deployer

	logLevel string
	Version  = ""
)

// NewRootCmd builds the command tree around [injectedApp]
func NewRootCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp
	rootCmd := &cobra.Command{
		Use: "deployer",
		Long: `Deployer publishes a compiled smart contract artifact to an Avalanche EVM
network, waits for the creation transaction to be confirmed and reports the
deployed contract address.

To get started, export PRIVATE_KEY and run
deployer deploy --artifact artifacts/contracts/Greeter.sol/Greeter.json`,
		PersistentPreRunE: createApp,
		Version:           Version,
	}
	cobrautils.ConfigureRootCmd(rootCmd)

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "log level for the application")
	rootCmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "json config file with network profiles")

	// deployer deploy
	rootCmd.AddCommand(deploycmd.NewCmd(app))
	// deployer network
	rootCmd.AddCommand(networkcmd.NewCmd(app))
	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}
	app.Setup(baseDir, log)
	// create the user facing logger as a global var
	ux.NewUserLog(log, cmd.OutOrStdout())
	log.Info("-----------")
	log.Info("cmd", zap.String("name", cmd.CommandPath()))
	return nil
}

func setupEnv() (string, error) {
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		return "", fmt.Errorf("unable to get system user: %w", err)
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)
	if err := os.MkdirAll(baseDir, perms.ReadWriteExecute); err != nil {
		return "", fmt.Errorf("failed creating the basedir %s: %w", baseDir, err)
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (logging.Logger, error) {
	var err error

	config := logging.Config{}
	config.LogLevel = logging.Info
	config.DisplayLevel, err = logging.ToLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level configured: %s", logLevel)
	}
	config.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = logging.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	factory := logging.NewFactory(config)
	log, err := factory.Make(constants.LogName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	return log, nil
}

// Execute runs the command tree and exits with code 1 on any failure.
// This is called by main.main()
func Execute() {
	app := application.New()
	rootCmd := NewRootCmd(app)
	// an interrupt stops waiting for the receipt, the submitted tx is not affected
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cobrautils.HandleErrors(err)
}
