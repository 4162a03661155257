package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "masterload",
		Short:         "Bulk-seed the master tables from CSV exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("csv", "", "path to the CSV export")
	cmd.PersistentFlags().String("secrets", "", "optional secrets.toml with a [postgres] section; environment is used otherwise")
	cmd.AddCommand(newRTOCmd())
	cmd.AddCommand(newMMVCmd())
	cmd.AddCommand(newPincodeCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
