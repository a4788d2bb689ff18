// Package dashboard serves the interactive analysis API over HTTP. Every
// endpoint accepts the same filter query parameters (from, to, min, max,
// type) and recomputes its view from the in-memory dataset on each call.
package dashboard

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Mayank2601/financial-dashboard/internal/analyzer"
	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/config"
	"github.com/Mayank2601/financial-dashboard/internal/customer"
	"github.com/Mayank2601/financial-dashboard/internal/export"
	"github.com/Mayank2601/financial-dashboard/internal/models"
	"github.com/Mayank2601/financial-dashboard/internal/report"
)

const filterDateFormat = "2006-01-02"

// Server holds the dataset and answers analysis queries over it. The
// config is kept so uploaded statements can be parsed on the fly.
type Server struct {
	data *models.Dataset
	cfg  *config.Config
	cat  *category.Categorizer
	log  *slog.Logger
}

// New returns a Server over the given dataset.
func New(data *models.Dataset, cfg *config.Config, cat *category.Categorizer, log *slog.Logger) *Server {
	return &Server{data: data, cfg: cfg, cat: cat, log: log}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "financial-dashboard",
		DisableStartupMessage: true,
	})

	app.Get("/", s.handleCharts)
	app.Get("/healthz", s.handleHealth)
	app.Get("/api/summary", s.handleSummary)
	app.Get("/api/income", s.handleIncome)
	app.Get("/api/expense", s.handleExpense)
	app.Get("/api/customers", s.handleCustomers)
	app.Get("/api/trends", s.handleTrends)
	app.Get("/api/transactions", s.handleTransactions)
	app.Get("/api/export/csv", s.handleExportCSV)
	app.Post("/api/convert", s.handleConvert)
	return app
}

// Listen starts the server on addr and blocks until shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("dashboard listening", "addr", addr, "transactions", len(s.data.Transactions))
	return s.App().Listen(addr)
}

// handleCharts renders the full chart page over the filtered view.
func (s *Server) handleCharts(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	b := &report.Builder{Categorizer: s.cat}
	if err := b.Render(&buf, txns); err != nil {
		s.log.Error("chart render failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "chart render failed")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "ok",
		"transactions": len(s.data.Transactions),
	})
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	sum := analyzer.Summarize(txns)
	months := analyzer.ByMonth(txns)

	resp := fiber.Map{
		"totalIncome":      sum.TotalIncome,
		"totalExpenses":    sum.TotalExpense,
		"netProfit":        sum.NetProfit,
		"transactionCount": sum.TotalCount,
		"incomeCount":      sum.IncomeCount,
		"expenseCount":     sum.ExpenseCount,
		"periodStart":      formatDate(sum.Start),
		"periodEnd":        formatDate(sum.End),
		"periodDays":       sum.PeriodDays,
		"avgDailyIncome":   sum.AvgDailyIncome,
		"avgDailyExpense":  sum.AvgDailyExpense,
		"profitableMonths": analyzer.ProfitableMonths(months),
		"totalMonths":      len(months),
	}
	if sum.BurnRateDefined {
		resp["burnRate"] = sum.BurnRate
	} else {
		resp["burnRate"] = nil
	}
	return c.JSON(resp)
}

func (s *Server) handleIncome(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	sum := analyzer.Summarize(txns)
	return c.JSON(fiber.Map{
		"total":   sum.TotalIncome,
		"count":   sum.IncomeCount,
		"average": sum.AvgIncome,
		"largest": sum.LargestIncome,
		"median":  sum.MedianIncome,
		"top":     analyzer.TopIncome(txns, 10),
		"monthly": analyzer.ByMonth(txns),
	})
}

func (s *Server) handleExpense(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	sum := analyzer.Summarize(txns)
	return c.JSON(fiber.Map{
		"total":     sum.TotalExpense,
		"count":     sum.ExpenseCount,
		"average":   sum.AvgExpense,
		"largest":   sum.LargestExpense,
		"median":    sum.MedianExpense,
		"top":       analyzer.TopExpense(txns, 10),
		"costHeads": analyzer.ByCategory(txns, s.cat),
	})
}

func (s *Server) handleCustomers(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	aggs := customer.Tag(txns)
	if aggs == nil {
		aggs = []customer.Aggregate{}
	}
	return c.JSON(fiber.Map{
		"customers": aggs,
		"count":     len(aggs),
	})
}

func (s *Server) handleTrends(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	dates, balances := analyzer.BalanceSeries(txns)
	labels := make([]string, 0, len(dates))
	for _, d := range dates {
		labels = append(labels, d.Format(filterDateFormat))
	}
	return c.JSON(fiber.Map{
		"monthly":  analyzer.ByMonth(txns),
		"weekdays": analyzer.ByWeekday(txns),
		"balance": fiber.Map{
			"dates":  labels,
			"values": balances,
		},
	})
}

func (s *Server) handleTransactions(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return c.JSON(fiber.Map{
		"transactions": txns,
		"count":        len(txns),
	})
}

// handleExportCSV streams the filtered set as a CSV download.
func (s *Server) handleExportCSV(c *fiber.Ctx) error {
	txns, err := s.filtered(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	w := &export.CSVWriter{}
	if err := w.Write(&buf, txns); err != nil {
		s.log.Error("csv export failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.Send(buf.Bytes())
}

// filtered applies the request's filter parameters to the dataset.
func (s *Server) filtered(c *fiber.Ctx) ([]models.Transaction, error) {
	f, err := parseFilter(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return s.data.Apply(f), nil
}

func parseFilter(c *fiber.Ctx) (models.Filter, error) {
	var f models.Filter

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(filterDateFormat, v)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q, want YYYY-MM-DD", v)
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(filterDateFormat, v)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q, want YYYY-MM-DD", v)
		}
		f.To = t
	}
	if v := c.Query("min"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, fmt.Errorf("invalid min amount %q", v)
		}
		f.MinAmount = d
	}
	if v := c.Query("max"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, fmt.Errorf("invalid max amount %q", v)
		}
		f.MaxAmount = d
	}
	switch v := models.TxnType(c.Query("type", string(models.TxnAll))); v {
	case "", models.TxnAll, models.TxnIncome, models.TxnExpense:
		f.Type = v
	default:
		return f, fmt.Errorf("invalid type %q, want all, income or expense", v)
	}
	return f, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(filterDateFormat)
}
