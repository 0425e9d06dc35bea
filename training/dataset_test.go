package training

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, lines []string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Error writing %s: %v", path, err)
	}
}

func TestRangerHeader(t *testing.T) {
	measures := []string{"QUAL", "GQ", "DP"}
	header := RangerHeader(measures)
	tokens := strings.Fields(header)
	if len(tokens) != len(measures)+1 {
		t.Errorf("Header has %d tokens, want %d", len(tokens), len(measures)+1)
	}
	if tokens[len(tokens)-1] != "TP" {
		t.Errorf("Last header token = %q, want TP", tokens[len(tokens)-1])
	}

	full := strings.Fields(RangerHeader(DefaultMeasures))
	if len(full) != len(DefaultMeasures)+1 {
		t.Errorf("Default header has %d tokens, want %d", len(full), len(DefaultMeasures)+1)
	}
}

func TestConcat(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.dat")
	b := filepath.Join(dir, "b.dat")
	out := filepath.Join(dir, "out.dat")
	writeFile(t, a, []string{"a1", "a2", "a3"})
	writeFile(t, b, []string{"b1", "b2"})

	if err := Concat([]string{a, b}, out); err != nil {
		t.Fatalf("Concat returned error: %v", err)
	}

	lines, err := readLines(out)
	if err != nil {
		t.Fatalf("Error reading %s: %v", out, err)
	}
	want := []string{"a1", "a2", "a3", "b1", "b2"}
	if len(lines) != len(want) {
		t.Fatalf("Concat wrote %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestConcatMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.dat")
	if err := Concat([]string{filepath.Join(dir, "no-such.dat")}, out); err == nil {
		t.Errorf("Concat should fail on a missing input file")
	}
}

func TestShuffle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.dat")
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("row%03d", i))
	}
	writeFile(t, path, lines)

	if err := Shuffle(path); err != nil {
		t.Fatalf("Shuffle returned error: %v", err)
	}

	shuffled, err := readLines(path)
	if err != nil {
		t.Fatalf("Error reading %s: %v", path, err)
	}
	if len(shuffled) != len(lines) {
		t.Fatalf("Shuffle changed line count from %d to %d", len(lines), len(shuffled))
	}

	sortedIn := append([]string{}, lines...)
	sortedOut := append([]string{}, shuffled...)
	sort.Strings(sortedIn)
	sort.Strings(sortedOut)
	for i := range sortedIn {
		if sortedIn[i] != sortedOut[i] {
			t.Fatalf("Shuffle changed the line multiset at %d: %q vs %q", i, sortedIn[i], sortedOut[i])
		}
	}

	same := true
	for i := range lines {
		if lines[i] != shuffled[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("Shuffle left 100 lines in their original order")
	}
}

func TestAddHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.dat")
	writeFile(t, path, []string{"1 2 0", "3 4 1"})

	if err := AddHeader(path, "A B TP"); err != nil {
		t.Fatalf("AddHeader returned error: %v", err)
	}

	lines, err := readLines(path)
	if err != nil {
		t.Fatalf("Error reading %s: %v", path, err)
	}
	if len(lines) != 3 {
		t.Fatalf("File has %d lines after AddHeader, want 3", len(lines))
	}
	if lines[0] != "A B TP" {
		t.Errorf("First line = %q, want header", lines[0])
	}
	if lines[1] != "1 2 0" || lines[2] != "3 4 1" {
		t.Errorf("AddHeader did not preserve existing content: %v", lines[1:])
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.dat")
	b := filepath.Join(dir, "b.dat")
	writeFile(t, a, []string{"x"})
	writeFile(t, b, []string{"y"})

	if err := RemoveAll([]string{a, b}); err != nil {
		t.Fatalf("RemoveAll returned error: %v", err)
	}
	for _, path := range []string{a, b} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s still exists after RemoveAll", path)
		}
	}

	if err := RemoveAll([]string{a}); err == nil {
		t.Errorf("RemoveAll should fail on an already-removed file")
	}
}
