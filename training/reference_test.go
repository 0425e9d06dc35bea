package training

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.fasta")
	if err := os.WriteFile(path, []byte(">chr1\nACGTACGT\n>chr2\nGGCCGGCC\n"), 0644); err != nil {
		t.Fatalf("Error writing FASTA: %v", err)
	}

	ids, err := CheckReference(path)
	if err != nil {
		t.Fatalf("CheckReference returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "chr1" || ids[1] != "chr2" {
		t.Errorf("CheckReference ids = %v, want [chr1 chr2]", ids)
	}
}

func TestCheckReferenceMissing(t *testing.T) {
	if _, err := CheckReference(filepath.Join(t.TempDir(), "no-such.fasta")); err == nil {
		t.Errorf("CheckReference should fail for a missing file")
	}
}

func TestCheckReferenceEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fasta")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Error writing FASTA: %v", err)
	}
	if _, err := CheckReference(path); err == nil {
		t.Errorf("CheckReference should fail for an empty reference")
	}
}
