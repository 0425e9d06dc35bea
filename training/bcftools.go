package training

import (
	"fmt"
	"os"

	"github.com/gmaffy/forest-trainer/utils"
)

// SubsetRegions restricts a compressed VCF to the given BED regions with
// bcftools view.
func SubsetRegions(bcftools, inVCF, outVCF, regionsBed string) error {
	err := utils.RunCmdVerbose(bcftools, "view", "-R", regionsBed, "-O", "z", "-o", outVCF, inVCF)
	if err != nil {
		return fmt.Errorf("bcftools view failed for %s: %v", inVCF, err)
	}
	if _, err := os.Stat(outVCF); err != nil {
		return fmt.Errorf("bcftools did not produce %s: %v", outVCF, err)
	}
	return nil
}
