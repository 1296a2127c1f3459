// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ava-labs/avalanche-contract-deployer/pkg/ux"

	"github.com/spf13/cobra"
)

var osExit = os.Exit

type UsageError struct {
	cmd *cobra.Command
	err error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("Usage error: %s", e.err)
}

func NewUsageError(cmd *cobra.Command, err error) UsageError {
	return UsageError{
		cmd: cmd,
		err: err,
	}
}

// ReportedError marks an error that was already shown to the user
type ReportedError struct {
	err error
}

func (e ReportedError) Error() string {
	return e.err.Error()
}

func (e ReportedError) Unwrap() error {
	return e.err
}

func NewReportedError(err error) error {
	if err == nil {
		return nil
	}
	return ReportedError{err: err}
}

func ExactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := cobra.ExactArgs(n)(cmd, args)
		if err != nil {
			_ = cmd.Help()
			err = NewUsageError(cmd, err)
		}
		return err
	}
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := cobra.MaximumNArgs(n)(cmd, args)
		if err != nil {
			_ = cmd.Help()
			err = NewUsageError(cmd, err)
		}
		return err
	}
}

// HandleErrors prints [err], unless already reported, and exits with code 1
func HandleErrors(err error) {
	if err == nil {
		return
	}
	var (
		usageErr    UsageError
		reportedErr ReportedError
	)
	switch {
	case errors.As(err, &usageErr):
		usageErr.cmd.Println(usageErr.cmd.UsageString())
		usageErr.cmd.Println()
		usageErr.cmd.Println(usageErr)
	case errors.As(err, &reportedErr):
	case ux.Logger != nil:
		ux.Logger.RedXToUser("Error: %s", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	osExit(1)
}

func CommandSuiteUsage(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return NewUsageError(
			cmd,
			fmt.Errorf("invalid subcommand %q", strings.Join(args, " ")),
		)
	}
	err := cmd.Help()
	if err != nil {
		fmt.Println(err)
	}
	return nil
}

func ConfigureRootCmd(cmd *cobra.Command) {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return NewUsageError(cmd, err)
	})
}
