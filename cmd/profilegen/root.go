package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/profile"
)

var outPath string

var rootCmd = &cobra.Command{
	Use:   "profilegen",
	Short: "Generate hourly demand-shape CSVs",
	Long: `Profilegen writes the built-in synthetic demand shapes as hourly CSVs.
The files can be edited or replaced with measured data and loaded back as
prepared profiles.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outPath, "out", "", "output file (default is stdout)")
	rootCmd.AddCommand(heatingCmd)
	rootCmd.AddCommand(baseCmd)
}

var heatingCmd = &cobra.Command{
	Use:   "heating",
	Short: "Write the hourly heating demand shape",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeShape(params.HeatingShape())
	},
}

var baseCmd = &cobra.Command{
	Use:   "base",
	Short: "Write the hourly base electricity demand shape",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeShape(params.BaseElectricityShape())
	},
}

func writeShape(d profile.Demand) error {
	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := params.WriteShape(w, d); err != nil {
		return fmt.Errorf("writing shape: %w", err)
	}
	return nil
}
