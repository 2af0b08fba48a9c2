package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/ledger-sage/ledger-sage/internal/common"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

// OFXParser reads bank and credit card statements in OFX/QFX format and
// converts their transactions to expenses. Only debits become expenses;
// credits are skipped.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files: leading blank
// lines, mixed-case SEVERITY values, and SGML-style tags missing their
// closing bracket.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX file and returns its debit transactions as
// expenses. The transaction name becomes the category candidate and the memo
// becomes the remarks.
func (p *OFXParser) Parse(reader io.Reader) ([]model.Expense, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidFormat, err)
	}

	var expenses []model.Expense
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			expenses = append(expenses, p.convert(stmt.BankTranList.Transactions)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			expenses = append(expenses, p.convert(stmt.BankTranList.Transactions)...)
		}
	}

	slog.Info("parsed OFX file",
		"expenses", len(expenses),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return expenses, nil
}

// convert maps OFX transactions to expenses. OFX uses negative amounts for
// debits.
func (p *OFXParser) convert(txns []ofxgo.Transaction) []model.Expense {
	var expenses []model.Expense
	for _, tx := range txns {
		amount, _ := tx.TrnAmt.Float64()
		if amount >= 0 {
			continue
		}

		name := string(tx.Name)
		if tx.Payee != nil && tx.Payee.Name != "" {
			name = string(tx.Payee.Name)
		}

		expenses = append(expenses, model.Expense{
			Date:     tx.DtPosted.Time,
			Category: strings.ToLower(strings.TrimSpace(name)),
			Remarks:  strings.TrimSpace(string(tx.Memo)),
			Amount:   -amount,
		})
	}
	return expenses
}
