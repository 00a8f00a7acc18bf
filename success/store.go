package success

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pebble "github.com/cockroachdb/pebble"
)

// SuccessRecord describes the last successful conversion of one font
type SuccessRecord struct {
	Font       string    `json:"font"`  // output filename, also the key
	Input      string    `json:"input"` // input filename
	RunID      string    `json:"run_id"`
	Encoder    string    `json:"encoder"`
	InputSize  int64     `json:"input_size"`
	OutputSize int64     `json:"output_size"`
	SHA256     string    `json:"sha256"` // hex digest of the output file
	Timestamp  time.Time `json:"timestamp"`
}

var db *pebble.DB

// Init initializes the success store
func Init(dbPath string) error {
	var err error
	db, err = pebble.Open(dbPath, &pebble.Options{})
	if err != nil {
		return fmt.Errorf("failed to open success store: %w", err)
	}
	return nil
}

// Close closes the success store
func Close() error {
	if db != nil {
		err := db.Close()
		db = nil
		return err
	}
	return nil
}

// StoreSuccess stores a successful conversion, replacing the previous
// record for the same output font. A zero timestamp is set to now.
func StoreSuccess(record SuccessRecord) error {
	if db == nil {
		return fmt.Errorf("success store not initialized")
	}
	if record.Font == "" {
		return fmt.Errorf("success record without font name")
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal success record: %w", err)
	}
	return db.Set([]byte(record.Font), data, pebble.Sync)
}

// GetSuccess retrieves the record for an output font
func GetSuccess(font string) (*SuccessRecord, error) {
	if db == nil {
		return nil, fmt.Errorf("success store not initialized")
	}

	data, closer, err := db.Get([]byte(font))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil // Not found is not an error
		}
		return nil, err
	}
	defer closer.Close()

	var record SuccessRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal success record: %w", err)
	}

	return &record, nil
}

// DeleteSuccess removes a success record
func DeleteSuccess(font string) error {
	if db == nil {
		return fmt.Errorf("success store not initialized")
	}
	return db.Delete([]byte(font), pebble.Sync)
}

// ListSuccessRecords returns all success records ordered by font name
func ListSuccessRecords() ([]SuccessRecord, error) {
	if db == nil {
		return nil, fmt.Errorf("success store not initialized")
	}

	var records []SuccessRecord
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var record SuccessRecord
		if err := json.Unmarshal(iter.Value(), &record); err != nil {
			continue // Skip invalid records
		}
		records = append(records, record)
	}

	return records, iter.Error()
}

// CleanupOldRecords removes success records older than the specified duration
func CleanupOldRecords(maxAge time.Duration) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("success store not initialized")
	}

	cutoff := time.Now().Add(-maxAge)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0, err
	}

	var keysToDelete [][]byte
	for iter.First(); iter.Valid(); iter.Next() {
		var record SuccessRecord
		if err := json.Unmarshal(iter.Value(), &record); err != nil {
			continue
		}
		if record.Timestamp.Before(cutoff) {
			key := make([]byte, len(iter.Key()))
			copy(key, iter.Key())
			keysToDelete = append(keysToDelete, key)
		}
	}
	if err := iter.Close(); err != nil {
		return 0, err
	}

	for _, key := range keysToDelete {
		if err := db.Delete(key, pebble.Sync); err != nil {
			return 0, fmt.Errorf("failed to delete old success record: %w", err)
		}
	}

	return len(keysToDelete), nil
}

// CheckHealth performs a basic health check on the success database
func CheckHealth() error {
	if db == nil {
		return fmt.Errorf("success database not initialized")
	}

	_, closer, err := db.Get([]byte("__health_check__"))
	if err != nil && !errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if closer != nil {
		closer.Close()
	}
	return nil
}
