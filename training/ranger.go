package training

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gmaffy/forest-trainer/utils"
)

// RunRangerTraining trains a probability forest on the assembled dataset. The
// label column is named TP by the dataset assembler.
func RunRangerTraining(ranger, dataPath string, trees, minNodeSize, threads int, outPrefix string) error {
	err := utils.RunCmdVerbose(ranger,
		"--file", dataPath,
		"--depvarname", "TP",
		"--probability",
		"--ntree", strconv.Itoa(trees),
		"--targetpartitionsize", strconv.Itoa(minNodeSize),
		"--nthreads", strconv.Itoa(threads),
		"--outprefix", outPrefix,
		"--write", "--verbose")
	if err != nil {
		return fmt.Errorf("ranger failed for %s: %v", dataPath, err)
	}
	if _, err := os.Stat(outPrefix + ".forest"); err != nil {
		return fmt.Errorf("ranger did not write %s.forest: %v", outPrefix, err)
	}
	return nil
}

// RemoveConfusion deletes the confusion-matrix byproduct ranger leaves next to
// the forest. Some ranger builds do not write one, so absence is fine.
func RemoveConfusion(outPrefix string) error {
	err := os.Remove(outPrefix + ".confusion")
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No confusion file at %s.confusion\n", outPrefix)
			return nil
		}
		return err
	}
	return nil
}
