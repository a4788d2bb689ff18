package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Mayank2601/financial-dashboard/internal/config"
	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// ofxNameLimit caps the NAME element per the OFX 2.0 spec.
const ofxNameLimit = 255

// OFXWriter writes an OFX 2.0 bank statement download. Zero-amount rows
// are skipped since OFX has no representation for them.
type OFXWriter struct {
	Config config.OFXConfig

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewOFXWriter returns a writer using the given account identifiers.
func NewOFXWriter(cfg config.OFXConfig) *OFXWriter {
	return &OFXWriter{Config: cfg, now: time.Now}
}

// WriteToFile writes the transactions to an OFX file at path.
func (w *OFXWriter) WriteToFile(path string, txns []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()
	return w.Write(f, txns)
}

// Write emits the OFX document to out.
func (w *OFXWriter) Write(out io.Writer, txns []models.Transaction) error {
	now := time.Now
	if w.now != nil {
		now = w.now
	}
	acctID := w.Config.AccountID
	if acctID == "" {
		acctID = "Account"
	}
	currency := w.Config.Currency
	if currency == "" {
		currency = "INR"
	}

	var b strings.Builder
	for _, line := range []string{
		"OFXHEADER:100",
		"DATA:OFXSGML",
		"VERSION:200",
		"SECURITY:NONE",
		"ENCODING:UTF-8",
		"CHARSET:ISO-8859-1",
		"COMPRESSION:NONE",
		"OLDFILEUID:NONE",
		"NEWFILEUID:NONE",
		"",
		"<OFX>",
		"  <SIGNONMSGSRSV1>",
		"    <SONRS>",
		"      <STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS>",
		"      <DTSERVER>" + now().Format("20060102150405") + "</DTSERVER>",
		"      <LANGUAGE>ENG</LANGUAGE>",
		"    </SONRS>",
		"  </SIGNONMSGSRSV1>",
		"  <BANKMSGSRSV1>",
		"    <STMTTRNRS>",
		"      <TRNUID>1</TRNUID>",
		"      <STATUS><CODE>0</CODE><SEVERITY>INFO</SEVERITY></STATUS>",
		"      <STMTRS>",
		"        <CURDEF>" + currency + "</CURDEF>",
		"        <BANKACCTFROM>",
		"          <BANKID>" + w.Config.BankID + "</BANKID>",
		"          <ACCTID>" + acctID + "</ACCTID>",
		"          <ACCTTYPE>CHECKING</ACCTTYPE>",
		"        </BANKACCTFROM>",
		"        <BANKTRANLIST>",
	} {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for i, t := range txns {
		dt := t.Date.Format("20060102")
		trnType := "CREDIT"
		amt := t.Deposit
		if t.Withdrawn.IsPositive() {
			trnType = "DEBIT"
			amt = t.Withdrawn.Neg()
		}
		if amt.IsZero() {
			continue
		}
		b.WriteString("          <STMTTRN>\n")
		b.WriteString("            <TRNTYPE>" + trnType + "</TRNTYPE>\n")
		b.WriteString("            <DTPOSTED>" + dt + "</DTPOSTED>\n")
		b.WriteString("            <TRNAMT>" + amt.StringFixed(2) + "</TRNAMT>\n")
		b.WriteString("            <FITID>" + fmt.Sprintf("%s%06d", dt, i) + "</FITID>\n")
		b.WriteString("            <NAME>" + ofxName(t.Narration) + "</NAME>\n")
		b.WriteString("          </STMTTRN>\n")
	}

	for _, line := range []string{
		"        </BANKTRANLIST>",
		"      </STMTRS>",
		"    </STMTTRNRS>",
		"  </BANKMSGSRSV1>",
		"</OFX>",
	} {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("writing OFX: %w", err)
	}
	return nil
}

// ofxName caps the narration and escapes the markup-significant characters.
func ofxName(s string) string {
	if len(s) > ofxNameLimit {
		s = s[:ofxNameLimit]
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
