package training

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gmaffy/forest-trainer/utils"
)

// The comparator writes these fixed names into its output directory.
const (
	truePositivesVCF  = "tp.vcf.gz"
	falsePositivesVCF = "fp.vcf.gz"
)

// RunVcfEval compares a call set against the truth VCF with rtg vcfeval.
func RunVcfEval(rtg, sdf, truthVCF, confidentBed, callsVCF, outDir string) error {
	return utils.RunCmdVerbose(rtg, "vcfeval",
		"-b", truthVCF, "-t", sdf,
		"--evaluation-regions", confidentBed, "--ref-overlap",
		"-c", callsVCF, "-o", outDir)
}

// evalDirFor derives the vcfeval output directory for one octopus legacy VCF.
func evalDirFor(outDir, legacyVCF string) string {
	return filepath.Join(outDir, strings.Replace(filepath.Base(legacyVCF), ".legacy.vcf.gz", ".eval", 1))
}

// EvalCalls runs rtg vcfeval on one call set and verifies the tp/fp VCFs the
// rest of the pipeline depends on were actually produced.
func EvalCalls(rtg, sdf, truthVCF, confidentBed, legacyVCF, outDir string) (string, error) {
	evalDir := evalDirFor(outDir, legacyVCF)
	if err := RunVcfEval(rtg, sdf, truthVCF, confidentBed, legacyVCF, evalDir); err != nil {
		return "", fmt.Errorf("rtg vcfeval failed for %s: %v", legacyVCF, err)
	}
	for _, name := range []string{truePositivesVCF, falsePositivesVCF} {
		if _, err := os.Stat(filepath.Join(evalDir, name)); err != nil {
			return "", fmt.Errorf("rtg vcfeval did not produce %s in %s: %v", name, evalDir, err)
		}
	}
	return evalDir, nil
}
