package training

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// CheckReference scans the reference FASTA and returns its sequence IDs, so a
// broken or empty reference fails the run before octopus is ever invoked.
func CheckReference(refFile string) ([]string, error) {
	fna, err := os.Open(refFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open FASTA file: %v", err)
	}
	defer fna.Close()

	var reader io.Reader = fna
	if strings.HasSuffix(refFile, ".gz") {
		gzReader, gzErr := gzip.NewReader(fna)
		if gzErr != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %v", gzErr)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	r := fasta.NewReader(reader, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(r)

	var ids []string
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		ids = append(ids, seq.ID)
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("failed to read FASTA file: %v", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no sequences in %s", refFile)
	}
	return ids, nil
}
