/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "forest-trainer",
	Short: "Trains a random forest call filter for octopus",
	Long: `Trains octopus's random forest call filter from truth sets:
1.	Call variants with octopus in --csr-train mode
2.	Evaluate the calls against a truth VCF with rtg vcfeval
3.	Extract annotation features from the tp/fp calls
4.	Assemble a labelled dataset and train a probability forest with ranger
`,
	// Uncomment the following line if your bare application
	// has an action associated with it:
	// Run: func(cmd *cobra.Command, args []string) { },
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cfgFile string
var refFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file ")
	rootCmd.PersistentFlags().StringVarP(&refFile, "reference", "r", "", "path to reference genome fasta file ")
}
