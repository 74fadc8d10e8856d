// Package kafkasrc is an alternate transaction producer that reads
// JSON transaction records, one per message, off a Kafka topic instead of
// a CSV file. It feeds the same bounded channel shape the csv package
// does, so internal/pipeline treats both sources interchangeably — the
// "external producer" spec §1 leaves abstract.
package kafkasrc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"ledgerengine/internal/domain/models"
	"ledgerengine/internal/ledger"
	"ledgerengine/internal/money"
)

// Config configures the Kafka-backed source.
type Config struct {
	Brokers  []string
	Topic    string
	Capacity int
}

// RowError is a decode-level ingestion failure, keyed by partition offset
// instead of a CSV line number.
type RowError struct {
	Offset int64
	Cause  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Cause)
}

// record is the wire shape of one Kafka message payload.
type record struct {
	Type   string  `json:"type"`
	Client uint16  `json:"client"`
	Tx     uint32  `json:"tx"`
	Amount *string `json:"amount,omitempty"`
}

// Read connects to cfg.Brokers, consumes cfg.Topic from the oldest
// available offset on partition 0, and streams decoded transactions onto
// the returned channel until the consumer is closed or ctx is cancelled.
//
// If the consumer stops draining the channels (ctx cancelled, per the
// Cancellation contract of spec §5), the producer goroutine observes
// ctx.Done() on its next send attempt and returns instead of blocking
// forever on a full channel.
func Read(ctx context.Context, cfg Config) (<-chan ledger.Transaction, <-chan *RowError, func() error, error) {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 16
	}

	consumer, err := sarama.NewConsumer(cfg.Brokers, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("kafkasrc: connect to %v: %w", cfg.Brokers, err)
	}

	partitionConsumer, err := consumer.ConsumePartition(cfg.Topic, 0, sarama.OffsetOldest)
	if err != nil {
		consumer.Close()
		return nil, nil, nil, fmt.Errorf("kafkasrc: consume topic %s: %w", cfg.Topic, err)
	}

	out := make(chan ledger.Transaction, capacity)
	errs := make(chan *RowError, capacity)

	go func() {
		defer close(out)
		defer close(errs)
		for {
			select {
			case msg, ok := <-partitionConsumer.Messages():
				if !ok {
					return
				}
				tx, rerr := decode(msg.Offset, msg.Value)
				if rerr != nil {
					select {
					case errs <- rerr:
					case <-ctx.Done():
						return
					}
					continue
				}
				select {
				case out <- tx:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	closeFn := func() error {
		if err := partitionConsumer.Close(); err != nil {
			consumer.Close()
			return err
		}
		return consumer.Close()
	}

	return out, errs, closeFn, nil
}

func decode(offset int64, payload []byte) (ledger.Transaction, *RowError) {
	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return ledger.Transaction{}, &RowError{Offset: offset, Cause: err.Error()}
	}

	client := models.ClientID(rec.Client)
	tx := models.TxID(rec.Tx)

	switch rec.Type {
	case "deposit", "withdrawal":
		if rec.Amount == nil {
			return ledger.Transaction{}, &RowError{Offset: offset, Cause: fmt.Sprintf("%s missing amount", rec.Type)}
		}
		amount, err := money.FromString(*rec.Amount)
		if err != nil {
			return ledger.Transaction{}, &RowError{Offset: offset, Cause: err.Error()}
		}
		if rec.Type == "deposit" {
			return ledger.NewDeposit(client, tx, amount), nil
		}
		return ledger.NewWithdrawal(client, tx, amount), nil
	case "dispute":
		return ledger.NewDispute(client, tx), nil
	case "resolve":
		return ledger.NewResolve(client, tx), nil
	case "chargeback":
		return ledger.NewChargeback(client, tx), nil
	default:
		return ledger.Transaction{}, &RowError{Offset: offset, Cause: fmt.Sprintf("unrecognized transaction type %q", rec.Type)}
	}
}
