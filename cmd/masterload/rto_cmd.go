package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRTOCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rto --csv <path>",
		Short: "Seed rto_master from an RTO export",
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
			columns := []string{"id", "rto_code", "city", "state", "search_string", "display_string"}
			for _, ins := range insurers {
				columns = append(columns, ins.Column())
			}

			stats, err := runLoad(
				cmd.Context(),
				conninfo,
				buildInsert("rto_master", columns, "id"),
				table,
				func(row []string) []any {
					id := table.cell(row, "id")
					if id == nil {
						id = uuid.NewString()
					}
					args := []any{
						id,
						table.cell(row, "rto", "rto_code"),
						table.cell(row, "city"),
						table.cell(row, "state"),
						table.cell(row, "searchstring", "search_string"),
						table.cell(row, "displaystring", "display_string"),
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
			stats.print("rto")
			return nil
		},
	}
}
