package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mbbank-monitor/internal/model"
	"mbbank-monitor/pkg/logger"
)

// LastTransactionStore persists the single most recently observed transaction
// as a JSON file. Exactly one record exists at a time; every confirmed new
// transaction overwrites it.
type LastTransactionStore struct {
	path   string
	logger *logger.Logger
}

// NewLastTransactionStore creates a store backed by the given file path
func NewLastTransactionStore(path string, log *logger.Logger) *LastTransactionStore {
	return &LastTransactionStore{path: path, logger: log}
}

// Load reads the persisted transaction. A missing or unparseable file reads
// as (nil, nil): no previous transaction is a normal first-run condition.
func (s *LastTransactionStore) Load() (*model.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var tx model.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		s.logger.Error("Failed to parse last transaction file, treating as absent",
			"path", s.path, "error", err)
		return nil, nil
	}

	return &tx, nil
}

// Save overwrites the persisted transaction. The write goes through a temp
// file and rename so a crash mid-write cannot leave a torn record.
func (s *LastTransactionStore) Save(tx *model.Transaction) error {
	data, err := json.MarshalIndent(tx, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}
