package training

import (
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

type SampleCounts struct {
	Sample string
	TP     int
	FP     int
}

// WriteReport renders an HTML report with the true/false positive training
// rows contributed by each sample.
func WriteReport(path string, counts []SampleCounts) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Training rows per sample"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Rows"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Sample"}),
	)

	var x []string
	var tpData []opts.BarData
	var fpData []opts.BarData
	for _, c := range counts {
		x = append(x, c.Sample)
		tpData = append(tpData, opts.BarData{Value: c.TP})
		fpData = append(fpData, opts.BarData{Value: c.FP})
	}
	bar.SetXAxis(x).AddSeries("TP", tpData).AddSeries("FP", fpData)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
