package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// DefaultKey is the key the board blob is stored under.
const DefaultKey = "focusflow"

// Store persists the board blob.
type Store interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) (*StateRecord, error)
	Save(ctx context.Context, record *StateRecord) error
	Close() error
}

// Encode writes the record as indented JSON.
func Encode(w io.Writer, record *StateRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// Decode reads a record and checks that it carries a tasks array.
func Decode(r io.Reader) (*StateRecord, error) {
	var probe struct {
		Tasks json.RawMessage `json:"tasks"`
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if len(probe.Tasks) == 0 || string(probe.Tasks) == "null" {
		return nil, fmt.Errorf("missing tasks field")
	}

	var record StateRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}
	return &record, nil
}
