package training

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/rand"
)

// RangerHeader names every feature column plus the TP label column, matching
// the per-row layout MakeRangerData emits.
func RangerHeader(measures []string) string {
	return strings.Join(measures, " ") + " TP"
}

// Concat appends the named files into one output file, keeping file order and
// line order within each file.
func Concat(paths []string, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	for _, path := range paths {
		in, inErr := os.Open(path)
		if inErr != nil {
			return inErr
		}
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if _, wErr := fmt.Fprintln(w, scanner.Text()); wErr != nil {
				in.Close()
				return wErr
			}
		}
		if sErr := scanner.Err(); sErr != nil {
			in.Close()
			return sErr
		}
		in.Close()
	}

	return w.Flush()
}

// Shuffle rewrites a file with its lines in uniformly random order.
func Shuffle(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	rng.Shuffle(len(lines), func(i, j int) {
		lines[i], lines[j] = lines[j], lines[i]
	})
	return writeLines(path, lines)
}

// AddHeader prepends one header line to a file, shifting the existing content
// down.
func AddHeader(path, header string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	return writeLines(path, append([]string{header}, lines...))
}

// RemoveAll deletes the per-sample intermediates once the master dataset has
// been assembled.
func RemoveAll(paths []string) error {
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
