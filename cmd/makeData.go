/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gmaffy/forest-trainer/training"
	"github.com/spf13/cobra"
)

// makeDataCmd represents the makeData command
var makeDataCmd = &cobra.Command{
	Use:   "makeData --vcf <calls.vcf.gz> --dat <out.dat> [args]",
	Short: "Extracts labelled feature rows from one VCF",
	Long: `Extracts the configured measures from every record of a VCF into a
space-delimited ranger data file, one row per call with a trailing 1
(true positive) or 0 (false positive) label.`,
	Run: func(cmd *cobra.Command, args []string) {
		vcfPath, vErr := cmd.Flags().GetString("vcf")
		if vErr != nil {
			log.Fatalf("Error getting vcf flag: %v", vErr)
		}

		datPath, dErr := cmd.Flags().GetString("dat")
		if dErr != nil {
			log.Fatalf("Error getting dat flag: %v", dErr)
		}

		truePositive, tpErr := cmd.Flags().GetBool("tp")
		if tpErr != nil {
			log.Fatalf("Error getting tp flag: %v", tpErr)
		}

		measures, mErr := cmd.Flags().GetStringSlice("measures")
		if mErr != nil {
			log.Fatalf("Error getting measures flag: %v", mErr)
		}

		missingValue, misErr := cmd.Flags().GetFloat64("missing_value")
		if misErr != nil {
			log.Fatalf("Error getting missing_value flag: %v", misErr)
		}

		if _, err := os.Stat(vcfPath); err != nil {
			log.Fatalf("File %s is not a valid file path: %v", vcfPath, err)
		}

		rows, err := training.MakeRangerData(vcfPath, datPath, truePositive, measures, missingValue)
		if err != nil {
			log.Fatalf("Feature extraction failed for %s: %v", vcfPath, err)
		}
		fmt.Printf("%s created (%d rows)\n", datPath, rows)
	},
}

func init() {
	rootCmd.AddCommand(makeDataCmd)

	makeDataCmd.Flags().String("vcf", "", "VCF to extract features from")
	makeDataCmd.Flags().String("dat", "", "Output data file")
	makeDataCmd.Flags().Bool("tp", false, "Label the rows as true positives")
	makeDataCmd.Flags().StringSlice("measures", training.DefaultMeasures, "Measures to extract")
	makeDataCmd.Flags().Float64("missing_value", -1, "Value substituted for missing measures")
}
