package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Mayank2601/financial-dashboard/internal/category"
	"github.com/Mayank2601/financial-dashboard/internal/config"
	"github.com/Mayank2601/financial-dashboard/internal/customer"
	"github.com/Mayank2601/financial-dashboard/internal/extractor"
	"github.com/Mayank2601/financial-dashboard/internal/models"
	"github.com/Mayank2601/financial-dashboard/internal/parser"
)

// loadConfig resolves the --config persistent flag, falling back to the
// built-in defaults when no file is given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadDataset runs the extraction and parse pipeline over the given PDFs
// and returns the merged, categorized, customer-tagged dataset. Individual
// files may fail (their error is logged and recorded on the Statement);
// the run fails only when nothing at all could be parsed.
func loadDataset(log *slog.Logger, cfg *config.Config, pdfPaths []string, password string) (*models.Dataset, error) {
	p := parser.New(cfg)

	statements := make([]models.Statement, 0, len(pdfPaths))
	for _, path := range pdfPaths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", path, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("statement not found: %s", abs)
		}

		pages, err := extractor.ExtractText(abs, password)
		if err != nil {
			switch {
			case errors.Is(err, extractor.ErrBadPassword):
				log.Error("cannot decrypt statement", "file", abs)
				if password == "" {
					log.Info("if the PDF is password protected, pass -p YOUR_PASSWORD")
				}
			case errors.Is(err, extractor.ErrNoText):
				log.Warn("no readable text, possibly a scanned statement", "file", abs)
			default:
				log.Error("extraction failed", "file", abs, "error", err)
			}
			statements = append(statements, models.Statement{File: abs, Err: err})
			continue
		}

		st := p.Parse(pages, abs)
		log.Info("parsed statement",
			"file", abs,
			"transactions", len(st.Transactions),
			"skipped", st.SkippedRows)
		statements = append(statements, st)
	}

	data := parser.Merge(statements)
	if len(data.Transactions) == 0 {
		return nil, errors.New("no transactions found in any input")
	}

	category.New(cfg).Tag(data.Transactions)
	customer.Tag(data.Transactions)
	return data, nil
}
