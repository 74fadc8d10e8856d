package csv_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csvio "ledgerengine/internal/ingest/csv"
	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/ledger"
	"ledgerengine/internal/money"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func drain(t *testing.T, path string) ([]ledger.Transaction, []*csvio.RowError) {
	t.Helper()
	out, errs, err := csvio.Read(context.Background(), path, 16)
	require.NoError(t, err)

	var txs []ledger.Transaction
	var rowErrs []*csvio.RowError
	for out != nil || errs != nil {
		select {
		case tx, ok := <-out:
			if !ok {
				out = nil
				continue
			}
			txs = append(txs, tx)
		case e, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			rowErrs = append(rowErrs, e)
		}
	}
	return txs, rowErrs
}

func TestReadDeposit(t *testing.T) {
	path := writeTempCSV(t, "type,client,tx,amount\ndeposit,1,1,10.5\n")
	txs, errs := drain(t, path)
	require.Empty(t, errs)
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.Deposit, txs[0].Kind)
	assert.Equal(t, models.ClientID(1), txs[0].Client)
	assert.Equal(t, models.TxID(1), txs[0].Tx)
	assert.Equal(t, money.FromFloat(10.5), txs[0].Amount)
}

func TestReadWithdrawal(t *testing.T) {
	path := writeTempCSV(t, "type,client,tx,amount\nwithdrawal,2,3,5.25\n")
	txs, errs := drain(t, path)
	require.Empty(t, errs)
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.Withdrawal, txs[0].Kind)
	assert.Equal(t, money.FromFloat(5.25), txs[0].Amount)
}

func TestReadDisputeResolveChargebackHaveNoAmount(t *testing.T) {
	path := writeTempCSV(t, "type,client,tx,amount\ndispute,1,1,\nresolve,1,1,\nchargeback,1,1,\n")
	txs, errs := drain(t, path)
	require.Empty(t, errs)
	require.Len(t, txs, 3)
	assert.Equal(t, ledger.Dispute, txs[0].Kind)
	assert.Equal(t, ledger.Resolve, txs[1].Kind)
	assert.Equal(t, ledger.Chargeback, txs[2].Kind)
}

func TestReadTrimsWhitespace(t *testing.T) {
	path := writeTempCSV(t, "type, client, tx, amount\ndeposit, 1, 1, 10.0\n")
	txs, errs := drain(t, path)
	require.Empty(t, errs)
	require.Len(t, txs, 1)
}

func TestReadReturnsErrorForUnknownType(t *testing.T) {
	path := writeTempCSV(t, "type,client,tx,amount\nunknown,1,1,10.0\n")
	txs, errs := drain(t, path)
	assert.Empty(t, txs)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Line)
}

func TestReadReturnsErrorForMissingAmount(t *testing.T) {
	path := writeTempCSV(t, "type,client,tx,amount\ndeposit,1,1,\n")
	txs, errs := drain(t, path)
	assert.Empty(t, txs)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Line)
}

func TestReadContinuesAfterRowError(t *testing.T) {
	path := writeTempCSV(t, "type,client,tx,amount\nunknown,1,1,10.0\ndeposit,2,2,5.0\n")
	txs, errs := drain(t, path)
	require.Len(t, errs, 1)
	require.Len(t, txs, 1)
	assert.Equal(t, models.ClientID(2), txs[0].Client)
}

func TestReadOpenFailureReturnsError(t *testing.T) {
	_, _, err := csvio.Read(context.Background(), filepath.Join(t.TempDir(), "does-not-exist.csv"), 16)
	assert.Error(t, err)
}

func TestReadStopsProducingWhenContextCancelled(t *testing.T) {
	var rows string
	for i := 0; i < 100; i++ {
		rows += "deposit,1,1,1.0\n"
	}
	path := writeTempCSV(t, "type,client,tx,amount\n"+rows)

	ctx, cancel := context.WithCancel(context.Background())
	out, errs, err := csvio.Read(ctx, path, 1)
	require.NoError(t, err)

	<-out // take one row to guarantee the producer is past the open
	cancel()

	// The producer must observe cancellation and close its channels
	// instead of blocking forever on a full out.
	for out != nil || errs != nil {
		select {
		case _, ok := <-out:
			if !ok {
				out = nil
			}
		case _, ok := <-errs:
			if !ok {
				errs = nil
			}
		case <-time.After(time.Second):
			t.Fatal("producer did not stop after context cancellation")
		}
	}
}

func TestWriteEmitsHeaderAndSortedRows(t *testing.T) {
	var buf bytes.Buffer
	clients := []models.Snapshot{
		{ID: 2, Available: money.FromScaled(500_000), Held: money.Zero, Total: money.FromScaled(500_000)},
		{ID: 1, Available: money.FromScaled(750_000), Held: money.Zero, Total: money.FromScaled(750_000)},
	}
	require.NoError(t, csvio.Write(&buf, clients))

	want := "client,available,held,total,locked\n1,75.0000,0.0000,75.0000,false\n2,50.0000,0.0000,50.0000,false\n"
	assert.Equal(t, want, buf.String())
}
