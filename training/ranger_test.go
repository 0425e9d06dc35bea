package training

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveConfusion(t *testing.T) {
	outPrefix := filepath.Join(t.TempDir(), "ranger_octopus")
	if err := os.WriteFile(outPrefix+".confusion", []byte("confusion\n"), 0644); err != nil {
		t.Fatalf("Error writing confusion file: %v", err)
	}

	if err := RemoveConfusion(outPrefix); err != nil {
		t.Fatalf("RemoveConfusion returned error: %v", err)
	}
	if _, err := os.Stat(outPrefix + ".confusion"); !os.IsNotExist(err) {
		t.Errorf("Confusion file still exists after RemoveConfusion")
	}

	// a second pass finds nothing to delete and still succeeds
	if err := RemoveConfusion(outPrefix); err != nil {
		t.Errorf("RemoveConfusion on an absent file returned error: %v", err)
	}
}
