package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/teller/internal/txform"
)

// Header is the CSV header of a monthly ledger file.
const Header = "id,reference,date,mode,amount,balance,note"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	colID      = 0
	colRef     = 1
	colDate    = 2
	colMode    = 3
	colAmount  = 4
	colBalance = 5
	colNote    = 6
)

// ReadTransactions reads every row of a ledger file, skipping the header.
func ReadTransactions(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if strings.Join(records[0], ",") != Header {
		return nil, fmt.Errorf("unexpected ledger header %q", strings.Join(records[0], ","))
	}

	txns := make([]Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteTransactions writes a complete ledger file including the header.
func WriteTransactions(w io.Writer, txns []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendTransactions writes rows without a header.
func AppendTransactions(w io.Writer, txns []Transaction) error {
	cw := csv.NewWriter(w)
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colRef] = t.Reference
	row[colDate] = t.Date.Format(dateFormat)
	row[colMode] = string(t.Mode)
	row[colAmount] = t.Amount.StringFixed(2)
	row[colBalance] = t.Balance.StringFixed(2)
	row[colNote] = t.Note
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (Transaction, error) {
	if len(record) != numFields {
		return Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	mode, err := txform.ParseMode(record[colMode])
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing mode: %w", err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	return Transaction{
		ID:        record[colID],
		Reference: record[colRef],
		Date:      date,
		Mode:      mode,
		Amount:    amount,
		Balance:   balance,
		Note:      record[colNote],
	}, nil
}
