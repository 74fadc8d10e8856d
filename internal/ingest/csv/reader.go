// Package csv reads the ledger's delimited transaction format and writes
// its delimited account snapshot format, per spec §6.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/ledger"
	"ledgerengine/internal/money"
)

// RowError is a row-level ingestion failure. It never aborts the stream;
// the caller decides what to do with it (log, count, discard).
type RowError struct {
	Line  int
	Cause string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Cause)
}

// Read opens path and streams its rows onto the returned transaction
// channel, buffered to capacity (the bounded queue of spec §5). Row-level
// errors are sent on the returned error channel instead of aborting
// ingestion. Both channels are closed once the file is fully read, ctx is
// cancelled, or the header row cannot be read. If the file cannot be
// opened, Read returns the error and no channels.
//
// If the consumer stops draining the channels (ctx cancelled, per the
// Cancellation contract of spec §5), the producer goroutine observes
// ctx.Done() on its next send attempt and exits instead of blocking
// forever on a full channel.
func Read(ctx context.Context, path string, capacity int) (<-chan ledger.Transaction, <-chan *RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	if capacity <= 0 {
		capacity = 16
	}

	out := make(chan ledger.Transaction, capacity)
	errs := make(chan *RowError, capacity)

	go func() {
		defer f.Close()
		defer close(out)
		defer close(errs)
		readRows(ctx, f, out, errs)
	}()

	return out, errs, nil
}

func readRows(ctx context.Context, r io.Reader, out chan<- ledger.Transaction, errs chan<- *RowError) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return
	}
	if err != nil {
		sendErr(ctx, errs, &RowError{Line: 1, Cause: err.Error()})
		return
	}
	_ = header // header counts as line 1 per spec §6

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return
		}
		line++
		if err != nil {
			if !sendErr(ctx, errs, &RowError{Line: line, Cause: err.Error()}) {
				return
			}
			continue
		}

		tx, rerr := parseRow(line, record)
		if rerr != nil {
			if !sendErr(ctx, errs, rerr) {
				return
			}
			continue
		}

		select {
		case out <- tx:
		case <-ctx.Done():
			return
		}
	}
}

// sendErr reports ok=false (meaning the caller should stop) when ctx is
// cancelled before the error could be delivered.
func sendErr(ctx context.Context, errs chan<- *RowError, e *RowError) bool {
	select {
	case errs <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func parseRow(line int, record []string) (ledger.Transaction, *RowError) {
	get := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	txType := get(0)
	client, err := parseClientID(get(1))
	if err != nil {
		return ledger.Transaction{}, &RowError{Line: line, Cause: err.Error()}
	}
	tx, err := parseTxID(get(2))
	if err != nil {
		return ledger.Transaction{}, &RowError{Line: line, Cause: err.Error()}
	}
	amountField := get(3)

	switch txType {
	case "deposit":
		amount, err := requireAmount(line, txType, amountField)
		if err != nil {
			return ledger.Transaction{}, err
		}
		return ledger.NewDeposit(client, tx, amount), nil
	case "withdrawal":
		amount, err := requireAmount(line, txType, amountField)
		if err != nil {
			return ledger.Transaction{}, err
		}
		return ledger.NewWithdrawal(client, tx, amount), nil
	case "dispute":
		return ledger.NewDispute(client, tx), nil
	case "resolve":
		return ledger.NewResolve(client, tx), nil
	case "chargeback":
		return ledger.NewChargeback(client, tx), nil
	default:
		return ledger.Transaction{}, &RowError{Line: line, Cause: fmt.Sprintf("unrecognized transaction type %q", txType)}
	}
}

func requireAmount(line int, txType, field string) (money.Amount, *RowError) {
	if field == "" {
		return money.Zero, &RowError{Line: line, Cause: fmt.Sprintf("%s missing amount", txType)}
	}
	amount, err := money.FromString(field)
	if err != nil {
		return money.Zero, &RowError{Line: line, Cause: err.Error()}
	}
	return amount, nil
}

func parseClientID(field string) (models.ClientID, error) {
	v, err := strconv.ParseUint(field, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid client id %q: %w", field, err)
	}
	return models.ClientID(v), nil
}

func parseTxID(field string) (models.TxID, error) {
	v, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid tx id %q: %w", field, err)
	}
	return models.TxID(v), nil
}
