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

// evalCallsCmd represents the evalCalls command
var evalCallsCmd = &cobra.Command{
	Use:   "evalCalls --vcf <calls.legacy.vcf.gz> --truth <truth.vcf.gz> [args]",
	Short: "Evaluates a call set against a truth VCF with rtg vcfeval",
	Long: `Runs rtg vcfeval on one octopus legacy VCF and verifies the evaluation
directory contains the tp.vcf.gz and fp.vcf.gz files the training
pipeline depends on.`,
	Run: func(cmd *cobra.Command, args []string) {
		callsVCF, vErr := cmd.Flags().GetString("vcf")
		if vErr != nil {
			log.Fatalf("Error getting vcf flag: %v", vErr)
		}

		truth, truthErr := cmd.Flags().GetString("truth")
		if truthErr != nil {
			log.Fatalf("Error getting truth flag: %v", truthErr)
		}

		confident, confErr := cmd.Flags().GetString("confident")
		if confErr != nil {
			log.Fatalf("Error getting confident flag: %v", confErr)
		}

		rtg, rtgErr := cmd.Flags().GetString("rtg")
		if rtgErr != nil {
			log.Fatalf("Error getting rtg flag: %v", rtgErr)
		}

		sdf, sdfErr := cmd.Flags().GetString("sdf")
		if sdfErr != nil {
			log.Fatalf("Error getting sdf flag: %v", sdfErr)
		}

		outDir, outErr := cmd.Flags().GetString("out")
		if outErr != nil {
			log.Fatalf("Error getting out flag: %v", outErr)
		}

		for _, path := range []string{callsVCF, truth, confident} {
			if _, err := os.Stat(path); err != nil {
				log.Fatalf("File %s is not a valid file path: %v", path, err)
			}
		}

		evalDir, err := training.EvalCalls(rtg, sdf, truth, confident, callsVCF, outDir)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("%s created\n", evalDir)
	},
}

func init() {
	rootCmd.AddCommand(evalCallsCmd)

	evalCallsCmd.Flags().String("vcf", "", "Octopus legacy VCF to evaluate")
	evalCallsCmd.Flags().String("truth", "", "Truth VCF file")
	evalCallsCmd.Flags().String("confident", "", "BED file with high confidence truth regions")
	evalCallsCmd.Flags().String("rtg", "rtg", "RTG Tools binary")
	evalCallsCmd.Flags().String("sdf", "", "RTG Tools SDF reference index")
	evalCallsCmd.Flags().StringP("out", "o", "forest_training", "Output directory")
}
