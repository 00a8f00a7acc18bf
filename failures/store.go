package failures

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pebble "github.com/cockroachdb/pebble"

	"fontconv/models"
)

// FailureRecord represents a font that could not be converted
type FailureRecord struct {
	Font      string    `json:"font"`    // input filename, also the key
	Outcome   string    `json:"outcome"` // "not_found" or "failed"
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error"`
}

var db *pebble.DB

// Init initializes the failure store
func Init(dbPath string) error {
	var err error
	db, err = pebble.Open(dbPath, &pebble.Options{})
	if err != nil {
		return fmt.Errorf("failed to open failure store: %w", err)
	}
	return nil
}

// Close closes the failure store
func Close() error {
	if db != nil {
		err := db.Close()
		db = nil
		return err
	}
	return nil
}

// StoreFailure records why a font was not converted in the given run
func StoreFailure(font, runID string, outcome models.Outcome, cause error) error {
	if db == nil {
		return fmt.Errorf("failure store not initialized")
	}

	record := FailureRecord{
		Font:      font,
		Outcome:   outcome.String(),
		RunID:     runID,
		Timestamp: time.Now(),
	}
	if cause != nil {
		record.Error = cause.Error()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal failure record: %w", err)
	}
	return db.Set([]byte(font), data, pebble.Sync)
}

// GetFailure retrieves the failure record of an input font
func GetFailure(font string) (*FailureRecord, error) {
	if db == nil {
		return nil, fmt.Errorf("failure store not initialized")
	}

	data, closer, err := db.Get([]byte(font))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil // No failure found
		}
		return nil, fmt.Errorf("failed to get failure: %w", err)
	}
	defer closer.Close()

	var record FailureRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal failure record: %w", err)
	}

	return &record, nil
}

// DeleteFailure removes a failure record
func DeleteFailure(font string) error {
	if db == nil {
		return fmt.Errorf("failure store not initialized")
	}
	return db.Delete([]byte(font), pebble.Sync)
}

// ListFailures returns all failure records ordered by font name
func ListFailures() ([]FailureRecord, error) {
	if db == nil {
		return nil, fmt.Errorf("failure store not initialized")
	}

	var failures []FailureRecord
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var record FailureRecord
		if err := json.Unmarshal(iter.Value(), &record); err != nil {
			continue // Skip invalid records
		}
		failures = append(failures, record)
	}

	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iteration error: %w", err)
	}

	return failures, nil
}

// CleanupOldRecords removes failure records older than maxAge and
// returns how many were deleted
func CleanupOldRecords(maxAge time.Duration) (int, error) {
	records, err := ListFailures()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	for _, record := range records {
		if !record.Timestamp.Before(cutoff) {
			continue
		}
		if err := DeleteFailure(record.Font); err != nil {
			return deleted, fmt.Errorf("failed to delete old failure record: %w", err)
		}
		deleted++
	}
	return deleted, nil
}
