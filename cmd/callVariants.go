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

// callVariantsCmd represents the callVariants command
var callVariantsCmd = &cobra.Command{
	Use:   "callVariants -r <ref.fasta> -b <reads.bam> -T <regions.bed> [args]",
	Short: "Calls one reads file with octopus in forest-training mode",
	Long: `Runs octopus with --legacy --csr-train so every configured measure is
annotated on the calls, and prints the legacy VCF path the training
pipeline would consume.`,
	Run: func(cmd *cobra.Command, args []string) {
		refFile, refErr := cmd.Flags().GetString("reference")
		if refErr != nil {
			log.Fatalf("Error getting reference flag: %v", refErr)
		}

		bam, bamErr := cmd.Flags().GetString("bam")
		if bamErr != nil {
			log.Fatalf("Error getting bam flag: %v", bamErr)
		}

		regions, regErr := cmd.Flags().GetString("regions")
		if regErr != nil {
			log.Fatalf("Error getting regions flag: %v", regErr)
		}

		measures, mErr := cmd.Flags().GetStringSlice("measures")
		if mErr != nil {
			log.Fatalf("Error getting measures flag: %v", mErr)
		}

		octopus, octErr := cmd.Flags().GetString("octopus")
		if octErr != nil {
			log.Fatalf("Error getting octopus flag: %v", octErr)
		}

		threads, tErr := cmd.Flags().GetInt("threads")
		if tErr != nil {
			log.Fatalf("Error getting threads flag: %v", tErr)
		}

		outDir, outErr := cmd.Flags().GetString("out")
		if outErr != nil {
			log.Fatalf("Error getting out flag: %v", outErr)
		}

		for _, path := range []string{refFile, bam, regions} {
			if _, err := os.Stat(path); err != nil {
				log.Fatalf("File %s is not a valid file path: %v", path, err)
			}
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			log.Fatalf("Error creating output directory: %v", err)
		}

		legacyVCF, err := training.CallVariants(octopus, refFile, bam, regions, measures, threads, outDir)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("%s created\n", legacyVCF)
	},
}

func init() {
	rootCmd.AddCommand(callVariantsCmd)

	callVariantsCmd.Flags().StringP("bam", "b", "", "Input reads file")
	callVariantsCmd.Flags().StringP("regions", "T", "", "BED file with regions to call")
	callVariantsCmd.Flags().StringSlice("measures", training.DefaultMeasures, "Measures to annotate")
	callVariantsCmd.Flags().String("octopus", "octopus", "Octopus binary")
	callVariantsCmd.Flags().StringP("out", "o", "forest_training", "Output directory")
	callVariantsCmd.Flags().IntP("threads", "t", 1, "Number of threads for octopus")
}
