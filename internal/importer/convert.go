package importer

import (
	"fmt"

	"github.com/alexanderramin/lapse/internal/domain"
)

// Convert transforms a validated ImportSchema into saved sets.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
// TotalTime is always computed from the sessions.
func Convert(schema *ImportSchema) ([]domain.SavedSessionSet, error) {
	sets := make([]domain.SavedSessionSet, 0, len(schema.Sets))
	for i, si := range schema.Sets {
		createdAt, err := domain.ParseInstant(si.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing createdAt of set %d: %w", i, err)
		}

		sessions := make([]domain.Session, 0, len(si.Sessions))
		for j, s := range si.Sessions {
			ts, err := domain.ParseInstant(s.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("parsing timestamp of session %d in set %d: %w", j, i, err)
			}
			sessions = append(sessions, domain.Session{
				ID:         string(s.ID),
				DurationMs: s.Duration,
				Timestamp:  ts,
			})
		}

		sets = append(sets, domain.NewSavedSessionSet(string(si.ID), si.Name, sessions, createdAt))
	}
	return sets, nil
}
