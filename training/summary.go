package training

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/stat"
)

type MeasureStats struct {
	Measure string
	Mean    float64
	StdDev  float64
}

type DatasetSummary struct {
	Rows    int
	TPRows  int
	FPRows  int
	Columns []MeasureStats
}

// SummarizeDataset loads the assembled, header-prefixed dataset and reports
// the class balance plus per-measure mean and standard deviation.
func SummarizeDataset(datPath string, measures []string) (DatasetSummary, error) {
	var summary DatasetSummary

	datFile, err := os.Open(datPath)
	if err != nil {
		return summary, err
	}
	defer datFile.Close()

	df := dataframe.ReadCSV(datFile, dataframe.WithDelimiter(' '))
	if df.Error() != nil {
		return summary, fmt.Errorf("failed to load %s: %v", datPath, df.Error())
	}

	summary.Rows = df.Nrow()
	for _, label := range df.Col("TP").Float() {
		if label == 1 {
			summary.TPRows++
		} else {
			summary.FPRows++
		}
	}

	for _, measure := range measures {
		vals := df.Col(measure).Float()
		summary.Columns = append(summary.Columns, MeasureStats{
			Measure: measure,
			Mean:    stat.Mean(vals, nil),
			StdDev:  stat.StdDev(vals, nil),
		})
	}
	return summary, nil
}

// WriteSummary writes the dataset summary as a tsv next to the trained model.
func WriteSummary(path string, summary DatasetSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "ROWS\t%d\nTP_ROWS\t%d\nFP_ROWS\t%d\n", summary.Rows, summary.TPRows, summary.FPRows); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "MEASURE\tMEAN\tSD\n"); err != nil {
		return err
	}
	for _, col := range summary.Columns {
		if _, err := fmt.Fprintf(f, "%s\t%g\t%g\n", col.Measure, col.Mean, col.StdDev); err != nil {
			return err
		}
	}
	return nil
}
