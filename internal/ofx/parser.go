// Package ofx reads OFX/QFX bank and credit card statements.
package ofx

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"fintrack/internal/logger"
	"fintrack/internal/money"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Transaction is one statement line.
type Transaction struct {
	FiTID       string
	Date        time.Time
	Description string
	// Amount is always positive; Debit tells the direction.
	Amount float64
	Debit  bool
	Type   string
}

// Parser parses OFX statements.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes formatting issues common in bank exports.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	// SGML files sometimes drop the closing bracket on container tags.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses every bank and credit card statement in reader.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []Transaction
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, tx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(tx))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, tx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(tx))
			}
		}
	}

	logger.Get().Debugw("Parsed OFX file",
		"transactions", len(transactions),
		"bank_statements", len(resp.Bank),
		"cc_statements", len(resp.CreditCard),
	)
	return transactions, nil
}

func (p *Parser) convert(tx ofxgo.Transaction) Transaction {
	amount, _ := tx.TrnAmt.Float64()
	debit := amount < 0
	if debit {
		amount = -amount
	}
	return Transaction{
		FiTID:       string(tx.FiTID),
		Date:        tx.DtPosted.Time,
		Description: describe(tx),
		Amount:      money.Round(amount),
		Debit:       debit,
		Type:        tx.TrnType.String(),
	}
}

// describe picks the most useful label for a transaction: the payee, then
// the name, then the memo when the name is blank or generic.
func describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGeneric(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}

func isGeneric(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
