package training

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vertgenlab/gonomics/vcf"
)

func testRecord() vcf.Vcf {
	return vcf.Vcf{
		Chr:    "chr1",
		Pos:    100,
		Ref:    "A",
		Alt:    []string{"T"},
		Qual:   34.5,
		Filter: "PASS",
		Info:   "DP=10;AF=0.5,0.25;SOMATIC;MQ=.",
		Format: []string{"GT", "GQ"},
		Samples: []vcf.Sample{
			{FormatData: []string{"0/1", "42"}},
		},
	}
}

func TestAnnotationDispatch(t *testing.T) {
	v := testRecord()

	cases := []struct {
		measure string
		want    string
	}{
		{"QUAL", "34.5"},
		{"GQ", "42"},
		{"DP", "10"},
		{"AF", "0.5"}, // first element of the multi-valued field only
		{"SOMATIC", "1"},
		{"MQ", "."},
	}
	for _, c := range cases {
		got, err := Annotation(v, c.measure)
		if err != nil {
			t.Errorf("Annotation(%s) returned error: %v", c.measure, err)
			continue
		}
		if got != c.want {
			t.Errorf("Annotation(%s) = %q, want %q", c.measure, got, c.want)
		}
	}

	if _, err := Annotation(v, "GC"); err == nil {
		t.Errorf("Annotation(GC) should fail for a record without a GC annotation")
	}
}

func TestAnnotationMissingQual(t *testing.T) {
	v := testRecord()
	v.Qual = math.NaN()
	got, err := Annotation(v, "QUAL")
	if err != nil {
		t.Fatalf("Annotation(QUAL) returned error: %v", err)
	}
	if got != "." {
		t.Errorf("Annotation(QUAL) on a missing quality = %q, want %q", got, ".")
	}
}

func TestAnnotationMissingGenotypeQuality(t *testing.T) {
	v := testRecord()
	v.Format = []string{"GT"}
	v.Samples = []vcf.Sample{{FormatData: []string{"0/1"}}}
	got, err := Annotation(v, "GQ")
	if err != nil {
		t.Fatalf("Annotation(GQ) returned error: %v", err)
	}
	if got != "." {
		t.Errorf("Annotation(GQ) without a GQ field = %q, want %q", got, ".")
	}

	v.Samples = nil
	got, err = Annotation(v, "GQ")
	if err != nil {
		t.Fatalf("Annotation(GQ) returned error: %v", err)
	}
	if got != "." {
		t.Errorf("Annotation(GQ) without samples = %q, want %q", got, ".")
	}
}

func TestAnnotationToString(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{".", "-1"},
		{"nan", "-1"},
		{"3.25", "3.25"},
		{"10", "10"},
	}
	for _, c := range cases {
		got, err := annotationToString(c.raw, -1)
		if err != nil {
			t.Errorf("annotationToString(%q) returned error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("annotationToString(%q) = %q, want %q", c.raw, got, c.want)
		}
	}

	if got, err := annotationToString(".", -99); err != nil || got != "-99" {
		t.Errorf("annotationToString(. , -99) = %q, %v, want -99", got, err)
	}

	if _, err := annotationToString("not-a-number", -1); err == nil {
		t.Errorf("annotationToString should fail on a non-numeric value")
	}
}

func TestParseRecord(t *testing.T) {
	v, err := parseRecord("chr1\t100\trs1\tA\tT,G\t60\tPASS\tDP=10\tGT:GQ\t0/1:42")
	if err != nil {
		t.Fatalf("parseRecord returned error: %v", err)
	}
	if v.Chr != "chr1" || v.Pos != 100 || v.Ref != "A" {
		t.Errorf("parseRecord fields = %s:%d %s", v.Chr, v.Pos, v.Ref)
	}
	if len(v.Alt) != 2 || v.Alt[0] != "T" {
		t.Errorf("Alt = %v", v.Alt)
	}
	if v.Qual != 60 {
		t.Errorf("Qual = %v, want 60", v.Qual)
	}
	if len(v.Format) != 2 || len(v.Samples) != 1 || v.Samples[0].FormatData[1] != "42" {
		t.Errorf("Format/Samples = %v / %v", v.Format, v.Samples)
	}

	v, err = parseRecord("chr1\t200\t.\tG\tC\t.\tPASS\tDP=12\tGT:GQ\t0/1:17")
	if err != nil {
		t.Fatalf("parseRecord returned error: %v", err)
	}
	if !math.IsNaN(v.Qual) {
		t.Errorf("Qual for a . quality = %v, want NaN", v.Qual)
	}

	if _, err := parseRecord("chr1\t200\t.\tG"); err == nil {
		t.Errorf("parseRecord should fail on a truncated line")
	}
}

func writeTestVCF(t *testing.T, dir string) string {
	t.Helper()
	lines := []string{
		"##fileformat=VCFv4.2",
		"##contig=<ID=chr1>",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsample1",
		"chr1\t100\t.\tA\tT\t60\tPASS\tDP=10;AF=0.5\tGT:GQ\t0/1:42",
		"chr1\t200\t.\tG\tC\t30\tPASS\tDP=.;AF=0.1\tGT:GQ\t1/1:99",
	}
	path := filepath.Join(dir, "calls.vcf")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Error writing test VCF: %v", err)
	}
	return path
}

func TestMakeRangerData(t *testing.T) {
	dir := t.TempDir()
	vcfPath := writeTestVCF(t, dir)
	datPath := filepath.Join(dir, "calls.dat")
	measures := []string{"QUAL", "GQ", "DP", "AF"}

	rows, err := MakeRangerData(vcfPath, datPath, true, measures, -1)
	if err != nil {
		t.Fatalf("MakeRangerData returned error: %v", err)
	}
	if rows != 2 {
		t.Fatalf("MakeRangerData wrote %d rows, want 2", rows)
	}

	data, rErr := os.ReadFile(datPath)
	if rErr != nil {
		t.Fatalf("Error reading data file: %v", rErr)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Data file has %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) != len(measures)+1 {
			t.Errorf("Row %d has %d tokens, want %d", i, len(tokens), len(measures)+1)
		}
		if tokens[len(tokens)-1] != "1" {
			t.Errorf("Row %d label = %q, want 1", i, tokens[len(tokens)-1])
		}
	}

	// DP is "." on the second record and must come out as the sentinel.
	secondRow := strings.Fields(lines[1])
	if secondRow[2] != "-1" {
		t.Errorf("Missing DP = %q, want -1", secondRow[2])
	}

	fpDat := filepath.Join(dir, "calls.fp.dat")
	if _, err := MakeRangerData(vcfPath, fpDat, false, measures, -1); err != nil {
		t.Fatalf("MakeRangerData returned error: %v", err)
	}
	fpData, fErr := os.ReadFile(fpDat)
	if fErr != nil {
		t.Fatalf("Error reading data file: %v", fErr)
	}
	fpLines := strings.Split(strings.TrimSuffix(string(fpData), "\n"), "\n")
	for i, line := range fpLines {
		tokens := strings.Fields(line)
		if tokens[len(tokens)-1] != "0" {
			t.Errorf("Row %d label = %q, want 0", i, tokens[len(tokens)-1])
		}
	}
}

func TestMakeRangerDataMissingQual(t *testing.T) {
	dir := t.TempDir()
	lines := []string{
		"##fileformat=VCFv4.2",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsample1",
		"chr1\t100\t.\tA\tT\t.\tPASS\tDP=10\tGT:GQ\t0/1:42",
	}
	vcfPath := filepath.Join(dir, "noqual.vcf")
	if err := os.WriteFile(vcfPath, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Error writing test VCF: %v", err)
	}
	datPath := filepath.Join(dir, "noqual.dat")

	rows, err := MakeRangerData(vcfPath, datPath, true, []string{"QUAL", "DP"}, -1)
	if err != nil {
		t.Fatalf("MakeRangerData returned error: %v", err)
	}
	if rows != 1 {
		t.Fatalf("MakeRangerData wrote %d rows, want 1", rows)
	}

	data, rErr := os.ReadFile(datPath)
	if rErr != nil {
		t.Fatalf("Error reading data file: %v", rErr)
	}
	tokens := strings.Fields(strings.TrimSpace(string(data)))
	want := []string{"-1", "10", "1"}
	if len(tokens) != len(want) {
		t.Fatalf("Row = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("Column %d = %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestMakeRangerDataAbsentMeasure(t *testing.T) {
	dir := t.TempDir()
	vcfPath := writeTestVCF(t, dir)
	datPath := filepath.Join(dir, "calls.dat")

	if _, err := MakeRangerData(vcfPath, datPath, true, []string{"QUAL", "MRC"}, -1); err == nil {
		t.Errorf("MakeRangerData should fail when a measure is absent from INFO")
	}
}
