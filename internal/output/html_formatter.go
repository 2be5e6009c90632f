package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ulipbi/internal/domain"
)

// HTMLFormatter produces a standalone HTML benefit illustration with a
// fund value chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/illustration.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("illustration").Funcs(template.FuncMap{
	"amount": FormatAmount,
	"pct":    FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartSeries struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

func (h HTMLFormatter) Format(il *domain.Illustration) ([]byte, error) {
	var buf bytes.Buffer
	rounded := il.Rounded(2, false)

	var years []int
	series := make([]chartSeries, 0, len(rounded.Scenarios))
	for i, sc := range rounded.Scenarios {
		s := chartSeries{Label: sc.Scenario.Name + " @ " + sc.Scenario.Label()}
		for _, y := range sc.Years {
			if i == 0 {
				years = append(years, y.PolicyYear)
			}
			s.Values = append(s.Values, y.FundValue.StringFixed(2))
		}
		series = append(series, s)
	}

	data := struct {
		*domain.Illustration
		Assumptions []string
		ChartYears  []int
		ChartSeries []chartSeries
	}{rounded, IllustrationAssumptions(il), years, series}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
