// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networkcmd

import (
	"strconv"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/cobrautils"
	"github.com/ava-labs/avalanche-contract-deployer/pkg/ux"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// deployer network list
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List network profiles",
		Long:  `The network list command prints every known network profile with its endpoint and chain id.`,
		RunE:  list,
		Args:  cobrautils.ExactArgs(0),
	}
}

func list(cmd *cobra.Command, _ []string) error {
	conf, err := app.LoadConfig()
	if err != nil {
		return err
	}
	ul := ux.NewUserLog(app.Log, cmd.OutOrStdout())
	t := ux.DefaultTable("Networks", table.Row{"Name", "RPC Endpoint", "Chain ID", "Explorer", "Default"})
	for _, name := range conf.NetworkNames() {
		network := conf.Networks[name]
		isDefault := ""
		if name == conf.NetworkName {
			isDefault = "*"
		}
		t.AppendRow(table.Row{
			name,
			network.RPCEndpoint,
			strconv.FormatUint(network.ChainID, 10),
			network.ExplorerBrowserURL,
			isDefault,
		})
	}
	ul.PrintToUser("%s", t.Render())
	return nil
}
