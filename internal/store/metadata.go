//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// MetadataTable holds key/value metadata of a store, including the
// completion marker of every populated domain.
var MetadataTable = &schema.Table{
	Name:        "datalab_metadata",
	Pattern:     schema.Metadata,
	Description: "Store metadata and per-domain completion markers",
	Columns: []schema.Column{
		{Name: "key", Type: schema.Text},
		{Name: "value", Type: schema.Text, Long: true},
	},
	PrimaryKey: []string{"key"},
}

// markerPrefix prefixes the metadata key of a domain's completion marker.
const markerPrefix = "populated."

// EnsureMetadata creates the metadata table if it doesn't exist.
func EnsureMetadata(ctx context.Context, s Store) error {
	for _, stmt := range s.Dialect().CreateTable(MetadataTable) {
		if err := s.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create metadata table: %w", err)
		}
	}
	return nil
}

// SaveMetadata inserts or updates one metadata value.
func SaveMetadata(ctx context.Context, e Execer, d schema.Dialect, key, value string) error {
	err := e.Exec(ctx, d.Upsert(MetadataTable.Name, []string{"key"}, []string{"value"}), key, value)
	if err != nil {
		return fmt.Errorf("failed to save metadata %s: %w", key, err)
	}
	return nil
}

// GetMetadataValue retrieves a single metadata value by key. ok is false
// when the key is absent.
func GetMetadataValue(ctx context.Context, q Querier, d schema.Dialect, key string) (value string, ok bool, err error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
		d.Quote("value"), d.Quote(MetadataTable.Name), d.Quote("key"), d.Placeholder(1))
	err = q.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, s Store) (map[string]string, error) {
	d := s.Dialect()
	rows, err := s.Query(ctx, fmt.Sprintf("SELECT %s, %s FROM %s",
		d.Quote("key"), d.Quote("value"), d.Quote(MetadataTable.Name)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DeleteMetadata removes one metadata key.
func DeleteMetadata(ctx context.Context, e Execer, d schema.Dialect, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		d.Quote(MetadataTable.Name), d.Quote("key"), d.Placeholder(1))
	if err := e.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete metadata %s: %w", key, err)
	}
	return nil
}

// Marker records a committed domain population.
type Marker struct {
	Module      string           `json:"module"`
	Domain      string           `json:"domain"`
	Seed        uint64           `json:"seed"`
	Scale       string           `json:"scale"`
	Version     string           `json:"version"`
	CompletedAt time.Time        `json:"completed_at"`
	Rows        map[string]int64 `json:"rows"`
}

// MarkerKey returns the metadata key of a domain's marker.
func MarkerKey(domain string) string {
	return markerPrefix + domain
}

// SaveMarker writes a marker. Called inside the domain transaction so the
// marker commits with the rows it describes.
func SaveMarker(ctx context.Context, e Execer, d schema.Dialect, m Marker) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode marker: %w", err)
	}
	if err := SaveMetadata(ctx, e, d, MarkerKey(m.Domain), string(data)); err != nil {
		return err
	}
	logging.Debug().
		Str("module", m.Module).
		Str("domain", m.Domain).
		Int64("rows", m.Total()).
		Msg("Saved completion marker")
	return nil
}

// LoadMarker reads a domain's marker; nil when the domain has none.
func LoadMarker(ctx context.Context, q Querier, d schema.Dialect, domain string) (*Marker, error) {
	value, ok, err := GetMetadataValue(ctx, q, d, MarkerKey(domain))
	if err != nil || !ok {
		return nil, err
	}
	var m Marker
	if err := json.Unmarshal([]byte(value), &m); err != nil {
		return nil, fmt.Errorf("failed to decode marker %s: %w", domain, err)
	}
	return &m, nil
}

// Markers returns every marker of a store keyed by domain.
func Markers(ctx context.Context, s Store) (map[string]*Marker, error) {
	all, err := GetAllMetadata(ctx, s)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Marker)
	for key, value := range all {
		domain, ok := strings.CutPrefix(key, markerPrefix)
		if !ok {
			continue
		}
		var m Marker
		if err := json.Unmarshal([]byte(value), &m); err != nil {
			return nil, fmt.Errorf("failed to decode marker %s: %w", domain, err)
		}
		out[domain] = &m
	}
	return out, nil
}

// Total returns the number of rows the marker records.
func (m *Marker) Total() int64 {
	var n int64
	for _, c := range m.Rows {
		n += c
	}
	return n
}
