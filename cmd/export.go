package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lukegbenson/lotmetrics/internal/dataset"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a feature table to XLSX",
	Long:  "Converts a written GeoJSON feature table into an XLSX workbook for spreadsheet inspection.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		if input == "" {
			input = cfg.Data.OutputPath
		}
		if output == "" {
			output = strings.TrimSuffix(input, ".geojson") + ".xlsx"
		}

		if err := dataset.ExportXLSX(input, output); err != nil {
			return eris.Wrap(err, "export")
		}

		fmt.Printf("Exported %s to %s\n", input, output)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("input", "", "feature table path (defaults to configured output)")
	exportCmd.Flags().String("output", "", "XLSX path (defaults to input with .xlsx extension)")
	rootCmd.AddCommand(exportCmd)
}
