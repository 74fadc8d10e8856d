package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"ledgerengine/internal/domain/models"
)

// Write emits the documented header and one row per client snapshot.
// Rows are sorted by client id purely to make output deterministic for
// tests and diffs; spec §6 does not require an order.
func Write(w io.Writer, clients []models.Snapshot) error {
	sorted := make([]models.Snapshot, len(clients))
	copy(sorted, clients)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, snap := range sorted {
		row := []string{
			strconv.FormatUint(uint64(snap.ID), 10),
			snap.Available.String(),
			snap.Held.String(),
			snap.Total.String(),
			strconv.FormatBool(snap.Locked),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row for client %d: %w", snap.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
