package training

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gmaffy/forest-trainer/utils"
)

// ReferenceID strips the FASTA extension off a reference path basename.
func ReferenceID(refPath string) string {
	base := filepath.Base(refPath)
	for _, suffix := range []string{".fasta.gz", ".fa.gz", ".fasta", ".fa"} {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return base
}

// ReadsID strips the alignment-file extension off a reads path basename.
func ReadsID(bamPath string) string {
	base := filepath.Base(bamPath)
	for _, suffix := range []string{".bam", ".cram"} {
		if strings.HasSuffix(base, suffix) {
			return strings.TrimSuffix(base, suffix)
		}
	}
	return base
}

// callOutputPaths derives the octopus output VCF and its --legacy sibling for
// one reference/reads pairing.
func callOutputPaths(outDir, refPath, bamPath string) (outVCF, legacyVCF string) {
	outVCF = filepath.Join(outDir, "octopus."+ReadsID(bamPath)+"."+ReferenceID(refPath)+".vcf.gz")
	legacyVCF = strings.Replace(outVCF, ".vcf.gz", ".legacy.vcf.gz", 1)
	return outVCF, legacyVCF
}

// RunOctopus invokes octopus in forest-training mode, asking it to annotate
// every configured measure on its calls.
func RunOctopus(octopus, refPath, bamPath, regionsBed string, measures []string, threads int, outPath string) error {
	args := []string{
		"-R", refPath, "-I", bamPath, "-t", regionsBed, "-o", outPath,
		"--threads", strconv.Itoa(threads), "--legacy", "--csr-train",
	}
	args = append(args, measures...)
	return utils.RunCmdVerbose(octopus, args...)
}

// CallVariants runs octopus for one reads file and returns the legacy VCF the
// rest of the pipeline consumes. The legacy VCF is part of the octopus output
// contract and is verified to exist.
func CallVariants(octopus, refPath, bamPath, regionsBed string, measures []string, threads int, outDir string) (string, error) {
	outVCF, legacyVCF := callOutputPaths(outDir, refPath, bamPath)
	if err := RunOctopus(octopus, refPath, bamPath, regionsBed, measures, threads, outVCF); err != nil {
		return "", fmt.Errorf("octopus failed for %s: %v", bamPath, err)
	}
	if _, err := os.Stat(legacyVCF); err != nil {
		return "", fmt.Errorf("octopus did not produce %s: %v", legacyVCF, err)
	}
	return legacyVCF, nil
}
