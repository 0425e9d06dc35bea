/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gmaffy/forest-trainer/training"
	"github.com/gmaffy/forest-trainer/utils"
	"github.com/spf13/cobra"
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train -r <ref.fasta> -b <reads.bam> [args]",
	Short: "Runs the whole forest-training pipeline",
	Long: `Runs the following pipeline for every reads file:

1. octopus in --csr-train mode to call and annotate variants
2. rtg vcfeval against the truth VCF to split calls into tp/fp
3. bcftools view to restrict tp/fp calls to the training regions
4. feature extraction into a labelled ranger dataset

then concatenates, shuffles and headers the dataset and trains a
probability forest with ranger.`,
	Run: func(cmd *cobra.Command, args []string) {
		configFile, cErr := cmd.Flags().GetString("config")
		if cErr != nil {
			log.Fatalf("Error getting config flag: %v", cErr)
		}

		refFile, refErr := cmd.Flags().GetString("reference")
		if refErr != nil {
			log.Fatalf("Error getting reference flag: %v", refErr)
		}

		bams, bamsErr := cmd.Flags().GetStringSlice("bam")
		if bamsErr != nil {
			log.Fatalf("Error getting bam flag: %v", bamsErr)
		}

		regions, regErr := cmd.Flags().GetString("regions")
		if regErr != nil {
			log.Fatalf("Error getting regions flag: %v", regErr)
		}

		measures, mErr := cmd.Flags().GetStringSlice("measures")
		if mErr != nil {
			log.Fatalf("Error getting measures flag: %v", mErr)
		}

		truth, truthErr := cmd.Flags().GetString("truth")
		if truthErr != nil {
			log.Fatalf("Error getting truth flag: %v", truthErr)
		}

		confident, confErr := cmd.Flags().GetString("confident")
		if confErr != nil {
			log.Fatalf("Error getting confident flag: %v", confErr)
		}

		octopus, octErr := cmd.Flags().GetString("octopus")
		if octErr != nil {
			log.Fatalf("Error getting octopus flag: %v", octErr)
		}

		rtg, rtgErr := cmd.Flags().GetString("rtg")
		if rtgErr != nil {
			log.Fatalf("Error getting rtg flag: %v", rtgErr)
		}

		sdf, sdfErr := cmd.Flags().GetString("sdf")
		if sdfErr != nil {
			log.Fatalf("Error getting sdf flag: %v", sdfErr)
		}

		bcftools, bcfErr := cmd.Flags().GetString("bcftools")
		if bcfErr != nil {
			log.Fatalf("Error getting bcftools flag: %v", bcfErr)
		}

		ranger, ranErr := cmd.Flags().GetString("ranger")
		if ranErr != nil {
			log.Fatalf("Error getting ranger flag: %v", ranErr)
		}

		trees, treesErr := cmd.Flags().GetInt("trees")
		if treesErr != nil {
			log.Fatalf("Error getting trees flag: %v", treesErr)
		}

		minNodeSize, mnsErr := cmd.Flags().GetInt("min_node_size")
		if mnsErr != nil {
			log.Fatalf("Error getting min_node_size flag: %v", mnsErr)
		}

		outDir, outErr := cmd.Flags().GetString("out")
		if outErr != nil {
			log.Fatalf("Error getting out flag: %v", outErr)
		}

		prefix, preErr := cmd.Flags().GetString("prefix")
		if preErr != nil {
			log.Fatalf("Error getting prefix flag: %v", preErr)
		}

		threads, tErr := cmd.Flags().GetInt("threads")
		if tErr != nil {
			log.Fatalf("Error getting threads flag: %v", tErr)
		}

		missingValue, misErr := cmd.Flags().GetFloat64("missing_value")
		if misErr != nil {
			log.Fatalf("Error getting missing_value flag: %v", misErr)
		}

		if configFile != "" {
			fmt.Printf("Running with config file %s\n", configFile)
			fileCfg, fErr := utils.ReadConfig(configFile)
			if fErr != nil {
				log.Fatalf("Error reading config file: %v", fErr)
			}
			if fileCfg.Reference != "" {
				refFile = fileCfg.Reference
			}
			if len(fileCfg.Bams) > 0 {
				bams = fileCfg.Bams
			}
			if fileCfg.Regions != "" {
				regions = fileCfg.Regions
			}
			if len(fileCfg.Measures) > 0 {
				measures = fileCfg.Measures
			}
			if fileCfg.Truth != "" {
				truth = fileCfg.Truth
			}
			if fileCfg.Confident != "" {
				confident = fileCfg.Confident
			}
			if fileCfg.Octopus != "" {
				octopus = fileCfg.Octopus
			}
			if fileCfg.RTG != "" {
				rtg = fileCfg.RTG
			}
			if fileCfg.SDF != "" {
				sdf = fileCfg.SDF
			}
			if fileCfg.Bcftools != "" {
				bcftools = fileCfg.Bcftools
			}
			if fileCfg.Ranger != "" {
				ranger = fileCfg.Ranger
			}
			if fileCfg.Trees != 0 {
				trees = fileCfg.Trees
			}
			if fileCfg.MinNodeSize != 0 {
				minNodeSize = fileCfg.MinNodeSize
			}
			if fileCfg.Threads != 0 {
				threads = fileCfg.Threads
			}
			if fileCfg.OutputDir != "" {
				outDir = fileCfg.OutputDir
			}
			if fileCfg.Prefix != "" {
				prefix = fileCfg.Prefix
			}
			if fileCfg.HasMissing {
				missingValue = fileCfg.MissingValue
			}
		}

		if _, rErr := os.Stat(refFile); rErr != nil {
			log.Fatalf("Reference file %s does not exist", refFile)
		}
		if len(bams) == 0 {
			log.Fatalf("You must provide at least one bam file")
		}
		for i := range bams {
			if _, err := os.Stat(bams[i]); err != nil {
				log.Fatalf("Bam file %s is not a valid file path: %v", bams[i], err)
			}
		}
		for _, path := range []string{regions, truth, confident} {
			if path == "" {
				log.Fatalf("You must provide regions, truth and confident files")
			}
			if _, err := os.Stat(path); err != nil {
				log.Fatalf("File %s is not a valid file path: %v", path, err)
			}
		}
		if sdf == "" {
			log.Fatalf("You must provide the SDF reference index for vcfeval")
		}
		if _, err := os.Stat(sdf); err != nil {
			log.Fatalf("SDF directory %s is not a valid path: %v", sdf, err)
		}

		fmt.Printf("Reference: %v\n", refFile)
		fmt.Printf("Bams: %v\n", bams)
		fmt.Printf("Regions: %v\n", regions)
		fmt.Printf("Output: %v\n\n", outDir)

		training.Train(training.Config{
			Reference:    refFile,
			Bams:         bams,
			Regions:      regions,
			Measures:     measures,
			Truth:        truth,
			Confident:    confident,
			Octopus:      octopus,
			RTG:          rtg,
			SDF:          sdf,
			Bcftools:     bcftools,
			Ranger:       ranger,
			Trees:        trees,
			MinNodeSize:  minNodeSize,
			Threads:      threads,
			OutputDir:    outDir,
			Prefix:       prefix,
			MissingValue: missingValue,
		})
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringSliceP("bam", "b", []string{}, "Input reads file (repeatable)")
	trainCmd.Flags().StringP("regions", "T", "", "BED file with regions to call and train on")
	trainCmd.Flags().StringSlice("measures", training.DefaultMeasures, "Measures to use for training")
	trainCmd.Flags().String("truth", "", "Truth VCF file")
	trainCmd.Flags().String("confident", "", "BED file with high confidence truth regions")
	trainCmd.Flags().String("octopus", "octopus", "Octopus binary")
	trainCmd.Flags().String("rtg", "rtg", "RTG Tools binary")
	trainCmd.Flags().String("sdf", "", "RTG Tools SDF reference index")
	trainCmd.Flags().String("bcftools", "bcftools", "bcftools binary")
	trainCmd.Flags().String("ranger", "ranger", "Ranger binary")
	trainCmd.Flags().Int("trees", 300, "Number of trees in the random forest")
	trainCmd.Flags().Int("min_node_size", 20, "Node size to stop growing trees at")
	trainCmd.Flags().StringP("out", "o", "forest_training", "Output directory")
	trainCmd.Flags().String("prefix", "ranger_octopus", "Output files prefix")
	trainCmd.Flags().IntP("threads", "t", 1, "Number of threads for octopus and ranger")
	trainCmd.Flags().Float64("missing_value", -1, "Value substituted for missing measures")
}
