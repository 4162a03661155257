package main

import (
	"github.com/spf13/cobra"
)

func newPincodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pincode --csv <path>",
		Short: "Seed pincode_master from a pincode export",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := csvFlag(cmd)
			if err != nil {
				return err
			}
			table, err := readCSV(path)
			if err != nil {
				return err
			}
			conninfo, err := resolveConnInfo(cmd)
			if err != nil {
				return err
			}

			insurers := table.insurerColumns()
			columns := []string{"pincode", "district", "city", "state"}
			for _, ins := range insurers {
				columns = append(columns, ins.Column())
			}

			stats, err := runLoad(
				cmd.Context(),
				conninfo,
				buildInsert("pincode_master", columns, "pincode"),
				table,
				func(row []string) []any {
					args := []any{
						table.cell(row, "pincode", "pin_code"),
						table.cell(row, "district"),
						table.cell(row, "city"),
						table.cell(row, "state"),
					}
					for _, ins := range insurers {
						args = append(args, table.insurerCell(row, ins))
					}
					return args
				},
			)
			if err != nil {
				return err
			}
			stats.print("pincode")
			return nil
		},
	}
}
