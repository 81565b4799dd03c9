package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
)

// OFXSource reads expense transactions from an OFX/QFX statement file.
// Statements are a one-shot export, so Fetch filters the file's contents
// to the requested date range rather than querying anything remote.
type OFXSource struct {
	path   string
	logger *slog.Logger
}

// NewOFXSource creates a source backed by the statement file at path.
func NewOFXSource(path string) *OFXSource {
	return &OFXSource{
		path:   path,
		logger: slog.Default().With("component", "ofx"),
	}
}

// Fetch parses the statement file and returns expense transactions posted
// within the date range.
func (s *OFXSource) Fetch(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", common.ErrFeedConnection, s.path, err)
	}
	defer func() { _ = file.Close() }()

	transactions, err := s.parse(file)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if txn.Date.Before(startDate) || txn.Date.After(endDate) {
			continue
		}
		filtered = append(filtered, txn)
	}

	s.logger.Info("Read transactions from statement file",
		"path", s.path,
		"parsed", len(transactions),
		"in_range", len(filtered))

	return filtered, nil
}

func (s *OFXSource) parse(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse statement file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, s.convertList(stmt.BankTranList)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, s.convertList(stmt.BankTranList)...)
		}
	}

	s.logger.Debug("Parsed statement file",
		"bank_statements", bankStmts,
		"cc_statements", ccStmts,
		"transactions", len(transactions))

	return transactions, nil
}

func (s *OFXSource) convertList(list *ofxgo.TransactionList) []model.Transaction {
	if list == nil {
		return nil
	}

	transactions := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		txn, ok := s.convertTransaction(ofxTx)
		if !ok {
			continue
		}
		transactions = append(transactions, txn)
	}
	return transactions
}

// convertTransaction maps one OFX record. OFX uses negative amounts for
// debits; inflows are dropped because only spending is analyzed.
func (s *OFXSource) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount >= 0 {
		return model.Transaction{}, false
	}

	txn := model.Transaction{
		Date:     ofxTx.DtPosted.Time,
		Merchant: extractMerchantName(ofxTx),
		Category: categoryForType(fmt.Sprintf("%v", ofxTx.TrnType)),
		Amount:   roundCents(-amount),
	}
	txn.SetTimeContext()
	txn.ID = txn.GenerateHash()

	return txn, true
}

// categoryForType infers a coarse category from the OFX transaction type.
// Statements carry no merchant categories, so most spending lands in
// "uncategorized" until the user labels it.
func categoryForType(trnType string) string {
	switch trnType {
	case "FEE", "SRVCHG":
		return "bank fees"
	case "ATM", "CASH":
		return "cash"
	default:
		return "uncategorized"
	}
}

// extractMerchantName pulls the cleanest merchant name available from the
// PAYEE, NAME, and MEMO fields.
func extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return cleanMerchantName(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip leading "MM/DD " date stamps some banks prepend.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return cleanMerchantName(name)
}

// isGenericDescription reports whether a transaction name carries no
// merchant information.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

var (
	severityCase = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	unclosedTag  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in bank-exported OFX files:
// leading whitespace before the header, mixed-case SEVERITY values, and
// SGML-style tags missing their closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityCase.ReplaceAllStringFunc(content, strings.ToUpper)
	content = unclosedTag.ReplaceAllString(content, "$1>")
	return content
}
