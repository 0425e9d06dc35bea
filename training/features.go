package training

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/vcf"
)

// DefaultMeasures is the annotation set octopus emits in --csr-train mode and
// the default feature column order for ranger.
var DefaultMeasures = []string{
	"AC", "AD", "AF", "ARF", "BQ", "CC", "CRF", "DP", "FRF", "GC", "GQ", "GQD",
	"NC", "MC", "MF", "MP", "MRC", "MQ", "MQ0", "MQD", "PP", "PPD", "QD", "QUAL",
	"REFCALL", "REB", "RSB", "RTB", "SB", "SD", "SF", "SHC", "SMQ", "SOMATIC",
	"STR_LENGTH", "STR_PERIOD",
}

// missingPlaceholder is the VCF symbol for an absent value.
const missingPlaceholder = "."

// specialMeasures holds the two lookups that do not come from the INFO column.
var specialMeasures = map[string]func(v vcf.Vcf) string{
	"QUAL": qualValue,
	"GQ":   genotypeQuality,
}

// Annotation resolves a measure name on one VCF record. QUAL and GQ are
// special-cased, everything else is read from the INFO column.
func Annotation(v vcf.Vcf, measure string) (string, error) {
	if fn, ok := specialMeasures[measure]; ok {
		return fn(v), nil
	}
	return infoField(v, measure)
}

func qualValue(v vcf.Vcf) string {
	if math.IsNaN(v.Qual) {
		return missingPlaceholder
	}
	return strconv.FormatFloat(v.Qual, 'g', -1, 64)
}

// genotypeQuality returns the GQ of the first sample, or "." when the record
// carries no samples or no GQ.
func genotypeQuality(v vcf.Vcf) string {
	if len(v.Samples) == 0 {
		return missingPlaceholder
	}
	idx := formatIndex(v.Format, "GQ")
	if idx < 0 || idx >= len(v.Samples[0].FormatData) {
		return missingPlaceholder
	}
	gq := v.Samples[0].FormatData[idx]
	if gq == "" {
		return missingPlaceholder
	}
	return gq
}

func formatIndex(format []string, key string) int {
	for i := range format {
		if format[i] == key {
			return i
		}
	}
	return -1
}

// infoField looks a measure up in the raw INFO column. Multi-valued fields are
// truncated to their first element, matching the original training script.
// A flag present without a value reads as 1. An absent field is an error.
func infoField(v vcf.Vcf, measure string) (string, error) {
	for _, entry := range strings.Split(v.Info, ";") {
		key, val, hasValue := strings.Cut(entry, "=")
		if key != measure {
			continue
		}
		if !hasValue {
			return "1", nil
		}
		if i := strings.IndexByte(val, ','); i >= 0 {
			val = val[:i]
		}
		return val, nil
	}
	return "", fmt.Errorf("no %s annotation in INFO at %s:%d", measure, v.Chr, v.Pos)
}

// annotationToString renders one annotation value for the ranger data file.
// Placeholder and NaN values become the missing-value sentinel; anything that
// is not a number is an error.
func annotationToString(raw string, missingValue float64) (string, error) {
	sentinel := strconv.FormatFloat(missingValue, 'g', -1, 64)
	if raw == missingPlaceholder {
		return sentinel, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", fmt.Errorf("malformed annotation value %q", raw)
	}
	if math.IsNaN(f) {
		return sentinel, nil
	}
	return raw, nil
}

// parseRecord splits one VCF data line into the fields measure lookup reads.
// The QUAL column is kept at the text level so a "." quality stays
// distinguishable from a numeric score.
func parseRecord(line string) (vcf.Vcf, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return vcf.Vcf{}, fmt.Errorf("malformed VCF line with %d columns", len(fields))
	}
	var v vcf.Vcf
	v.Chr = fields[0]
	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return vcf.Vcf{}, fmt.Errorf("bad POS %q on %s: %v", fields[1], v.Chr, err)
	}
	v.Pos = pos
	v.Id = fields[2]
	v.Ref = fields[3]
	v.Alt = strings.Split(fields[4], ",")
	if fields[5] == missingPlaceholder {
		v.Qual = math.NaN()
	} else {
		qual, qErr := strconv.ParseFloat(fields[5], 64)
		if qErr != nil {
			return vcf.Vcf{}, fmt.Errorf("bad QUAL %q at %s:%d: %v", fields[5], v.Chr, v.Pos, qErr)
		}
		v.Qual = qual
	}
	v.Filter = fields[6]
	v.Info = fields[7]
	if len(fields) >= 10 {
		v.Format = strings.Split(fields[8], ":")
		v.Samples = []vcf.Sample{{FormatData: strings.Split(fields[9], ":")}}
	}
	return v, nil
}

// MakeRangerData extracts the configured measures from every record of a VCF
// and writes one space-delimited row per record, ending with the binary label
// (1 for true positives, 0 for false positives). Rows keep the call order of
// the source VCF. Returns the number of rows written.
func MakeRangerData(vcfPath, outPath string, truePositive bool, measures []string, missingValue float64) (int, error) {
	if _, err := os.Stat(vcfPath); err != nil {
		return 0, err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	label := "0"
	if truePositive {
		label = "1"
	}

	in := fileio.EasyOpen(vcfPath)
	defer in.Close()

	rows := 0
	for line, done := fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		v, pErr := parseRecord(line)
		if pErr != nil {
			return rows, pErr
		}
		row := make([]string, 0, len(measures)+1)
		for _, measure := range measures {
			raw, aErr := Annotation(v, measure)
			if aErr != nil {
				return rows, aErr
			}
			val, sErr := annotationToString(raw, missingValue)
			if sErr != nil {
				return rows, fmt.Errorf("measure %s at %s:%d: %v", measure, v.Chr, v.Pos, sErr)
			}
			row = append(row, val)
		}
		row = append(row, label)
		if _, wErr := fmt.Fprintln(w, strings.Join(row, " ")); wErr != nil {
			return rows, wErr
		}
		rows++
	}

	return rows, w.Flush()
}
