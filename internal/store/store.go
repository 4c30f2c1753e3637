// Package store persists the whole ledger document as a single JSON file.
//
// The file is read once at startup and rewritten in full after every
// mutation. Concurrent external writers are unsupported: there is no lock
// around the read-modify-write cycle, and a second writer can lose updates.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/PF6771/eien-invoice/internal/logger"
	"github.com/PF6771/eien-invoice/pkg/models"
)

// ErrCorruptDocument is returned when the data file exists but does not
// decode into a ledger document. The file is left untouched so it can be
// inspected or repaired by hand.
var ErrCorruptDocument = errors.New("ledger document is corrupt")

// Store reads and writes the ledger document at a fixed path.
type Store struct {
	path string
	log  zerolog.Logger
}

// New returns a store bound to the given file path.
func New(path string) *Store {
	return &Store{
		path: path,
		log:  logger.WithComponent("store"),
	}
}

// Path returns the data file path the store was created with.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted document. A missing file is not an error and
// yields an empty ledger; unreadable or malformed content is.
func (s *Store) Load() (models.Ledger, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("path", s.path).Msg("No data file, starting with empty ledger")
			return models.Ledger{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", s.path, err)
	}

	var ledger models.Ledger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w: %v", s.path, ErrCorruptDocument, err)
	}
	if ledger == nil {
		return nil, fmt.Errorf("store: decode %s: %w: document is null", s.path, ErrCorruptDocument)
	}
	// A present customer key must carry an invoices array, even when empty.
	for name, customer := range ledger {
		if customer == nil {
			return nil, fmt.Errorf("store: decode %s: %w: customer %q is null", s.path, ErrCorruptDocument, name)
		}
		if customer.Invoices == nil {
			customer.Invoices = []models.Invoice{}
		}
	}

	s.log.Debug().Str("path", s.path).Int("customers", len(ledger)).Msg("Ledger loaded")
	return ledger, nil
}

// Save overwrites the persisted document with the full ledger. The document
// is written to a temporary file in the same directory and renamed into
// place, so a crash mid-write never corrupts previously good data.
func (s *Store) Save(ledger models.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}

	s.log.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("Ledger saved")
	return nil
}
