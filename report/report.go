// Package report renders a downloadable HTML report from an analysis
// payload. The report is self-contained (inline styles, no assets) so it
// can be saved or printed to PDF by the browser.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"monetrix/analytics"
	"monetrix/helpers"
)

// Data is everything the report template needs
type Data struct {
	BusinessName string
	PeriodLabel  string
	Date         time.Time
	Analytics    analytics.Metrics
	Insights     []analytics.Insight
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rupees": helpers.FormatRupees,
	"pct": func(v float64) string {
		return fmt.Sprintf("%.2f%%", v)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Monetrix Analysis Report</title>
  <style>
    body { font-family: Arial, sans-serif; padding: 40px; }
    h1 { color: #38bdf8; text-align: center; }
    h2 { color: #22c55e; border-bottom: 2px solid #22c55e; padding-bottom: 10px; }
    .metric { margin: 10px 0; }
    .insight { margin: 5px 0; padding-left: 20px; }
  </style>
</head>
<body>
  <h1>Monetrix Financial Analysis</h1>
  <h2>Business Information</h2>
  <p><strong>Business:</strong> {{if .BusinessName}}{{.BusinessName}}{{else}}N/A{{end}}</p>
  <p><strong>Period:</strong> {{if .PeriodLabel}}{{.PeriodLabel}}{{else}}N/A{{end}}</p>
  <p><strong>Date:</strong> {{.Date.Format "02/01/2006"}}</p>

  <h2>Financial Metrics</h2>
  <div class="metric"><strong>Total Revenue:</strong> {{rupees .Analytics.TotalRevenue}}</div>
  <div class="metric"><strong>COGS:</strong> {{rupees .Analytics.COGS}}</div>
  <div class="metric"><strong>Gross Profit:</strong> {{rupees .Analytics.GrossProfit}}</div>
  <div class="metric"><strong>Total Expenses:</strong> {{rupees .Analytics.TotalExpenses}}</div>
  <div class="metric"><strong>Net Profit:</strong> {{rupees .Analytics.NetProfit}}</div>
  <div class="metric"><strong>Net Margin:</strong> {{pct .Analytics.NetMargin}}</div>

  <h2>AI Insights</h2>
  {{if .Insights}}{{range .Insights}}<div class="insight">• {{.Text}}</div>
  {{end}}{{else}}<p>No insights available.</p>{{end}}
</body>
</html>`))

// Render produces the HTML report
func Render(data Data) ([]byte, error) {
	if data.Date.IsZero() {
		data.Date = time.Now()
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the suggested download filename for a report generated
// on the given date.
func Filename(date time.Time) string {
	return fmt.Sprintf("monetrix-analysis-%s.html", date.Format("2006-01-02"))
}
