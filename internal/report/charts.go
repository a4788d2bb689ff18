// Package report renders the analysis as a standalone HTML page of charts.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Mayank2601/financial-dashboard/internal/analyzer"
	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/customer"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// topCustomerCount limits the customer bar chart to the biggest payers.
const topCustomerCount = 15

// Builder assembles the chart page for one transaction set.
type Builder struct {
	Categorizer *category.Categorizer
}

// WriteHTML renders all charts into a single HTML file at path.
func (b *Builder) WriteHTML(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	return b.Render(f, txns)
}

// Render writes the chart page to out. The dashboard serves this directly.
func (b *Builder) Render(out io.Writer, txns []models.Transaction) error {
	page := components.NewPage()
	page.PageTitle = "Financial Report"
	page.AddCharts(
		b.monthlyBar(txns),
		b.costHeadPie(txns),
		b.costHeadCountPie(txns),
		b.customerBar(txns),
		b.balanceLine(txns),
		b.dailyVolumeBar(txns),
		b.weekdayBar(txns),
	)
	if err := page.Render(out); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func (b *Builder) monthlyBar(txns []models.Transaction) components.Charter {
	rollups := analyzer.ByMonth(txns)

	months := make([]string, 0, len(rollups))
	income := make([]opts.BarData, 0, len(rollups))
	expense := make([]opts.BarData, 0, len(rollups))
	net := make([]opts.BarData, 0, len(rollups))
	for _, r := range rollups {
		months = append(months, r.Month)
		income = append(income, opts.BarData{Value: r.Income.InexactFloat64()})
		expense = append(expense, opts.BarData{Value: r.Expense.InexactFloat64()})
		net = append(net, opts.BarData{Value: r.Net.InexactFloat64()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Monthly Income vs Expenses"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(months).
		AddSeries("Income", income).
		AddSeries("Expenses", expense).
		AddSeries("Net", net)
	return bar
}

func (b *Builder) costHeadPie(txns []models.Transaction) components.Charter {
	var items []opts.PieData
	for _, ct := range analyzer.ByCategory(txns, b.Categorizer) {
		if ct.Amount.IsZero() {
			continue
		}
		items = append(items, opts.PieData{
			Name:  ct.Name,
			Value: ct.Amount.InexactFloat64(),
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Expense Distribution by Cost Head"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("Cost Heads", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c}",
		}))
	return pie
}

func (b *Builder) costHeadCountPie(txns []models.Transaction) components.Charter {
	var items []opts.PieData
	for _, ct := range analyzer.ByCategory(txns, b.Categorizer) {
		if ct.Count == 0 {
			continue
		}
		items = append(items, opts.PieData{Name: ct.Name, Value: ct.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Transaction Count by Cost Head"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("Cost Heads", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c}",
		}))
	return pie
}

func (b *Builder) dailyVolumeBar(txns []models.Transaction) components.Charter {
	counts := make(map[string]int)
	var order []string
	for _, t := range txns {
		key := t.Date.Format("2006-01-02")
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}
	sort.Strings(order)

	volume := make([]opts.BarData, 0, len(order))
	for _, key := range order {
		volume = append(volume, opts.BarData{Value: counts[key]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Transaction Volume"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(order).AddSeries("Transactions", volume)
	return bar
}

func (b *Builder) customerBar(txns []models.Transaction) components.Charter {
	tagged := make([]models.Transaction, len(txns))
	copy(tagged, txns)
	aggs := customer.Tag(tagged)
	if len(aggs) > topCustomerCount {
		aggs = aggs[:topCustomerCount]
	}

	keys := make([]string, 0, len(aggs))
	totals := make([]opts.BarData, 0, len(aggs))
	for _, a := range aggs {
		keys = append(keys, a.Key)
		totals = append(totals, opts.BarData{Value: a.Total.InexactFloat64()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Top Customers by Total Amount"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(keys).AddSeries("Total", totals)
	return bar
}

func (b *Builder) balanceLine(txns []models.Transaction) components.Charter {
	dates, balances := analyzer.BalanceSeries(txns)

	labels := make([]string, 0, len(dates))
	points := make([]opts.LineData, 0, len(balances))
	for i := range dates {
		labels = append(labels, dates[i].Format("2006-01-02"))
		points = append(points, opts.LineData{Value: balances[i].InexactFloat64()})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Balance Over Time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels).AddSeries("Balance", points)
	return line
}

func (b *Builder) weekdayBar(txns []models.Transaction) components.Charter {
	rollups := analyzer.ByWeekday(txns)

	days := make([]string, 0, len(rollups))
	income := make([]opts.BarData, 0, len(rollups))
	expense := make([]opts.BarData, 0, len(rollups))
	for _, r := range rollups {
		days = append(days, r.Day.String())
		income = append(income, opts.BarData{Value: r.Income.InexactFloat64()})
		expense = append(expense, opts.BarData{Value: r.Expense.InexactFloat64()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Activity by Day of Week"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(days).
		AddSeries("Income", income).
		AddSeries("Expenses", expense)
	return bar
}
