package extractor

import (
	"strings"
	"testing"
)

func TestIsReadableText(t *testing.T) {
	good := []string{
		`HDFC BANK Statement of Account
Date Narration Withdrawal Amt. Deposit Amt. Closing Balance
01/04/25 UPI-SWIGGY-BANGALORE-PAYMENT 450.00 49,550.00`,
	}
	if !isReadableText(good) {
		t.Error("readable statement text rejected")
	}

	if isReadableText(nil) {
		t.Error("empty input accepted")
	}
	if isReadableText([]string{"short"}) {
		t.Error("too-short input accepted")
	}

	// Identity-encoded fonts decode to high-codepoint garbage.
	garbage := []string{strings.Repeat("þÿĂă", 50)}
	if isReadableText(garbage) {
		t.Error("garbage text accepted")
	}

	// Readable prose without any statement vocabulary.
	prose := []string{strings.Repeat("hello world this is a letter ", 10)}
	if isReadableText(prose) {
		t.Error("non-statement text accepted")
	}
}

func TestTextQuality(t *testing.T) {
	if q := textQuality([]string{"Date 01/04/25 Balance 1,234.56"}); q <= 0.9 {
		t.Errorf("clean text quality: got %f, want > 0.9", q)
	}
	if q := textQuality([]string{"þÿĂă"}); q != 0 {
		t.Errorf("garbage quality: got %f, want 0", q)
	}
	if q := textQuality(nil); q != 0 {
		t.Errorf("empty quality: got %f, want 0", q)
	}
}

func TestExtractText_MissingFile(t *testing.T) {
	if _, err := ExtractText("/nonexistent/statement.pdf", ""); err == nil {
		t.Error("expected error for missing file")
	}
}
