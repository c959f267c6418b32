package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/fin-tools/tco-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth   int
	AmountWidth int
	ShareWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   32,
		AmountWidth: 16,
		ShareWidth:  8,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type breakdownRow struct {
	Name   string
	Amount float64
	Share  float64
}

type breakdownView struct {
	Title string
	Rows  []breakdownRow
}

type reportView struct {
	ProductID  string
	Total      float64
	Currency   string
	Months     int
	Breakdowns []breakdownView
	Items      int
}

// Handle renders a TCO report as aligned text tables, one per breakdown axis.
func (c *Reporter) Handle(report *domain.TCOReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, amount, share float64) string {
			return fmt.Sprintf("| %-*s | %*.2f | %*.1f%% |",
				c.config.NameWidth, name,
				c.config.AmountWidth, amount,
				c.config.ShareWidth-1, share)
		},
		"header": func() string {
			return fmt.Sprintf("| %-*s | %*s | %*s |",
				c.config.NameWidth, "Bucket",
				c.config.AmountWidth, "Amount",
				c.config.ShareWidth, "Share")
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2),
				strings.Repeat("-", c.config.ShareWidth+2))
		},
	}

	tmpl := `
TCO report for product {{.ProductID}} ({{.Months}} months)

Total: {{.Currency}} {{printf "%.2f" .Total}}
Line items: {{.Items}}

{{range .Breakdowns}}
=== {{.Title}} ===
{{separator}}
{{header}}
{{separator}}
{{range .Rows}}{{formatRow .Name .Amount .Share}}
{{end}}{{separator}}
{{end}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, buildView(report))
}

func buildView(report *domain.TCOReport) reportView {
	return reportView{
		ProductID: report.ProductID,
		Total:     report.TotalTCO,
		Currency:  report.Currency,
		Months:    report.TimePeriodMonths,
		Items:     len(report.LineItems),
		Breakdowns: []breakdownView{
			{Title: "By category", Rows: buildRows(report.BreakdownByCategory, report.TotalTCO)},
			{Title: "By scope", Rows: buildRows(report.BreakdownByScope, report.TotalTCO)},
			{Title: "By cost type", Rows: buildRows(report.BreakdownByCostType, report.TotalTCO)},
		},
	}
}

func buildRows(buckets map[string]float64, total float64) []breakdownRow {
	rows := make([]breakdownRow, 0, len(buckets))
	for name, amount := range buckets {
		share := 0.0
		if total != 0 {
			share = amount / total * 100
		}
		rows = append(rows, breakdownRow{Name: name, Amount: amount, Share: share})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
