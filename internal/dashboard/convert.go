package dashboard

import (
	"bytes"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Mayank2601/financial-dashboard/internal/analyzer"
	"github.com/Mayank2601/financial-dashboard/internal/customer"
	"github.com/Mayank2601/financial-dashboard/internal/export"
	"github.com/Mayank2601/financial-dashboard/internal/extractor"
	"github.com/Mayank2601/financial-dashboard/internal/models"
	"github.com/Mayank2601/financial-dashboard/internal/parser"
)

// pageBreakMarker separates pages in text pre-extracted on the client.
const pageBreakMarker = "\n---PAGE_BREAK---\n"

// ConvertResponse is the JSON body returned by POST /api/convert.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	CSV          string               `json:"csv,omitempty"`
	TotalIncome  decimal.Decimal      `json:"totalIncome"`
	TotalExpense decimal.Decimal      `json:"totalExpense"`
	Count        int                  `json:"count"`
}

// handleConvert accepts a multipart PDF upload (form field "file", optional
// "password"), parses it and returns the tagged transactions plus a CSV
// rendering. Clients that extract text themselves may skip server-side
// extraction by sending it in "extractedText".
func (s *Server) handleConvert(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return convertError(c, fiber.StatusBadRequest, "no file uploaded, use form field 'file'")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return convertError(c, fiber.StatusBadRequest, "only PDF files are supported")
	}

	var pages []string
	if extracted := c.FormValue("extractedText"); extracted != "" {
		for _, page := range strings.Split(extracted, pageBreakMarker) {
			if page = strings.TrimSpace(page); page != "" {
				pages = append(pages, page)
			}
		}
	}

	if len(pages) == 0 {
		tmp, err := os.CreateTemp("", "statement-*.pdf")
		if err != nil {
			return convertError(c, fiber.StatusInternalServerError, "could not store upload")
		}
		defer os.Remove(tmp.Name())
		tmp.Close()

		if err := c.SaveFile(fh, tmp.Name()); err != nil {
			return convertError(c, fiber.StatusInternalServerError, "could not store upload")
		}
		pages, err = extractor.ExtractText(tmp.Name(), c.FormValue("password"))
		if err != nil {
			s.log.Warn("extraction failed", "file", fh.Filename, "error", err)
			return convertError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
	}

	st := parser.New(s.cfg).Parse(pages, fh.Filename)
	if len(st.Transactions) == 0 {
		return convertError(c, fiber.StatusUnprocessableEntity, "no transactions found in "+fh.Filename)
	}
	s.cat.Tag(st.Transactions)
	customer.Tag(st.Transactions)

	var csvBuf bytes.Buffer
	if err := (&export.CSVWriter{}).Write(&csvBuf, st.Transactions); err != nil {
		s.log.Error("csv generation failed", "error", err)
		return convertError(c, fiber.StatusInternalServerError, "csv generation failed")
	}

	sum := analyzer.Summarize(st.Transactions)
	s.log.Info("converted upload", "file", fh.Filename, "transactions", len(st.Transactions))
	return c.JSON(ConvertResponse{
		Success:      true,
		Transactions: st.Transactions,
		CSV:          csvBuf.String(),
		TotalIncome:  sum.TotalIncome,
		TotalExpense: sum.TotalExpense,
		Count:        len(st.Transactions),
	})
}

func convertError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
