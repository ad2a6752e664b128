package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
)

// ArchiveVersion is written by Export and is the newest version Load accepts.
const ArchiveVersion = 1

// ImportSchema is the top-level JSON structure of a set archive.
//
// A bare JSON array is also accepted: it is read as Sets, which lets the raw
// savedSessionSets payload be imported directly.
type ImportSchema struct {
	Version    int         `json:"version"`
	ExportedAt string      `json:"exportedAt,omitempty"`
	Sets       []SetImport `json:"sets"`
}

// SetImport is one saved set in the archive.
type SetImport struct {
	ID        domain.FlexibleID `json:"id"`
	Name      string            `json:"name"`
	Sessions  []SessionImport   `json:"sessions"`
	TotalTime *int64            `json:"totalTime,omitempty"`
	CreatedAt string            `json:"createdAt"`
}

// SessionImport is one session within a set.
type SessionImport struct {
	ID        domain.FlexibleID `json:"id"`
	Duration  int64             `json:"duration"`
	Timestamp string            `json:"timestamp"`
}

// LoadImportSchema reads and parses a set archive file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses an archive or a bare array of sets.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var sets []SetImport
		if err := json.Unmarshal(trimmed, &sets); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return &ImportSchema{Version: ArchiveVersion, Sets: sets}, nil
	}

	var schema ImportSchema
	if err := json.Unmarshal(trimmed, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// Export builds an archive of sets in collection order.
func Export(sets []domain.SavedSessionSet, exportedAt time.Time) *ImportSchema {
	schema := &ImportSchema{
		Version:    ArchiveVersion,
		ExportedAt: domain.FormatInstant(exportedAt),
		Sets:       make([]SetImport, 0, len(sets)),
	}
	for _, set := range sets {
		total := set.TotalTime
		sessions := make([]SessionImport, 0, len(set.Sessions))
		for _, s := range set.Sessions {
			sessions = append(sessions, SessionImport{
				ID:        domain.FlexibleID(s.ID),
				Duration:  s.DurationMs,
				Timestamp: domain.FormatInstant(s.Timestamp),
			})
		}
		schema.Sets = append(schema.Sets, SetImport{
			ID:        domain.FlexibleID(set.ID),
			Name:      set.Name,
			Sessions:  sessions,
			TotalTime: &total,
			CreatedAt: domain.FormatInstant(set.CreatedAt),
		})
	}
	return schema
}

// WriteArchive writes schema as indented JSON.
func WriteArchive(w io.Writer, schema *ImportSchema) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	return nil
}
