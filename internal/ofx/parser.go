// Package ofx reads bank and credit card downloads in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/budget/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// SGML exports sometimes drop the closing bracket of a bare tag line.
	openTagRe = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	// Card processors prefix the posting date, e.g. "01/14 COFFEE SHOP".
	datePrefixRe = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

var merchantPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"ACH CREDIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

var genericDescriptions = map[string]bool{
	"DEBIT":           true,
	"CREDIT":          true,
	"PURCHASE":        true,
	"PAYMENT":         true,
	"DEPOSIT":         true,
	"POS TRANSACTION": true,
	"CARD PURCHASE":   true,
}

// Statement holds the transactions of one account in a file.
type Statement struct {
	AccountID string
	Kind      string
	Inputs    []model.TransactionInput
}

// Parser converts OFX statements into transaction inputs. Credits become
// income and debits become expenses; OFX carries no budget categories, so
// each side gets a fixed category id.
type Parser struct {
	incomeCategory  string
	expenseCategory string
}

// Option configures a Parser.
type Option func(*Parser)

// WithExpenseCategory sets the category id given to debits.
func WithExpenseCategory(id string) Option {
	return func(p *Parser) { p.expenseCategory = id }
}

// WithIncomeCategory sets the category id given to credits.
func WithIncomeCategory(id string) Option {
	return func(p *Parser) { p.incomeCategory = id }
}

// NewParser creates a parser. Debits default to the "other" category.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		incomeCategory:  model.IncomeCategoryID,
		expenseCategory: model.OtherCategoryID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// preprocess fixes formatting that ofxgo rejects but banks emit anyway.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagRe.ReplaceAllString(content, "$1>")
}

func (p *Parser) decode(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseStatements returns every bank and credit card statement in the file.
func (p *Parser) ParseStatements(ctx context.Context, reader io.Reader) ([]Statement, error) {
	resp, err := p.decode(reader)
	if err != nil {
		return nil, err
	}

	var stmts []Statement
	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			stmts = append(stmts, p.statement("bank", string(stmt.BankAcctFrom.AcctID), stmt.BankTranList))
		}
	}
	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			stmts = append(stmts, p.statement("credit card", string(stmt.CCAcctFrom.AcctID), stmt.BankTranList))
		}
	}
	return stmts, nil
}

// ParseFile returns the transactions of every statement in the file, in
// file order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.TransactionInput, error) {
	stmts, err := p.ParseStatements(ctx, reader)
	if err != nil {
		return nil, err
	}

	var inputs []model.TransactionInput
	for _, s := range stmts {
		inputs = append(inputs, s.Inputs...)
	}

	slog.Info("Parsed OFX file",
		"transactions", len(inputs),
		"statements", len(stmts))
	return inputs, nil
}

func (p *Parser) statement(kind, accountID string, list *ofxgo.TransactionList) Statement {
	s := Statement{AccountID: accountID, Kind: kind}
	if list == nil {
		return s
	}
	for _, tx := range list.Transactions {
		s.Inputs = append(s.Inputs, p.convert(tx))
	}
	return s
}

func (p *Parser) convert(tx ofxgo.Transaction) model.TransactionInput {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		slog.Warn("Unreadable OFX amount", "fitid", tx.FiTID, "error", err)
		amount = decimal.Zero
	}

	in := model.TransactionInput{
		Date:        tx.DtPosted.Time,
		Type:        model.TypeIncome,
		Category:    p.incomeCategory,
		Description: merchantName(tx),
		Amount:      amount.Abs(),
	}
	if amount.IsNegative() {
		in.Type = model.TypeExpense
		in.Category = p.expenseCategory
	}
	if in.Description == "" && tx.CheckNum != "" {
		in.Description = "Check " + string(tx.CheckNum)
	}
	return in
}

// merchantName picks the cleanest description the bank provided.
func merchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && genericDescriptions[strings.ToUpper(name)] {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(datePrefixRe.ReplaceAllString(name, ""))
}

// Accounts lists the distinct account ids in the file.
func (p *Parser) Accounts(ctx context.Context, reader io.Reader) ([]string, error) {
	stmts, err := p.ParseStatements(ctx, reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	for _, s := range stmts {
		if s.AccountID == "" || seen[s.AccountID] {
			continue
		}
		seen[s.AccountID] = true
		accounts = append(accounts, s.AccountID)
	}
	return accounts, nil
}
