// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networkcmd

import (
	"github.com/ava-labs/avalanche-contract-deployer/pkg/application"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/cobrautils"
	"github.com/spf13/cobra"
)

var app *application.Deployer

func NewCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect the network profiles available for deployment",
		Long: `The network command suite lists the network profiles a contract can be
deployed to. Profiles are built in (fuji, snowtrace) or given on the
networks section of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cobrautils.CommandSuiteUsage(cmd, args)
		},
		Args: cobrautils.MaximumNArgs(1),
	}
	// network list
	cmd.AddCommand(newListCmd())
	return cmd
}
