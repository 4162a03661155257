package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newMMVCmd() *cobra.Command {
	var productID int

	cmd := &cobra.Command{
		Use:   "mmv --csv <path> [--product-id 1|2]",
		Short: "Seed mmv_master from a make/model/variant export",
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
			columns := []string{
				"id", "product_id", "make", "model", "variant",
				"fuel_type", "cc", "ensuredit_id", "body_type",
				"seating_capacity", "carrying_capacity",
			}
			for _, ins := range insurers {
				columns = append(columns, ins.Column())
			}

			stats, err := runLoad(
				cmd.Context(),
				conninfo,
				buildInsert("mmv_master", columns, "ensuredit_id"),
				table,
				func(row []string) []any {
					args := []any{
						uuid.NewString(),
						table.intCell(row, "productid", productID),
						table.cell(row, "make"),
						table.cell(row, "model"),
						table.cell(row, "variant"),
						table.cell(row, "fueltype", "fuel_type"),
						table.intCell(row, "cc", 0),
						table.cell(row, "ensureditid", "ensuredit_id"),
						table.cell(row, "bodytype", "body_type"),
						table.intCell(row, "seating", 2),
						table.intCell(row, "carrying", 1),
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
			stats.print("mmv")
			return nil
		},
	}
	cmd.Flags().IntVar(&productID, "product-id", 1, "product line used when the export lacks a productId column")
	return cmd
}
