package repository

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/lapse/internal/domain"
)

// savedSetRecord is the persisted JSON shape of a SavedSessionSet.
type savedSetRecord struct {
	ID        domain.FlexibleID `json:"id"`
	Name      string            `json:"name"`
	Sessions  []sessionRecord   `json:"sessions"`
	TotalTime int64             `json:"totalTime"`
	CreatedAt string            `json:"createdAt"`
}

type sessionRecord struct {
	ID        domain.FlexibleID `json:"id"`
	Duration  int64             `json:"duration"`
	Timestamp string            `json:"timestamp"`
}

// encodeSets serializes the full collection.
func encodeSets(sets []domain.SavedSessionSet) (string, error) {
	records := make([]savedSetRecord, 0, len(sets))
	for _, set := range sets {
		sessions := make([]sessionRecord, 0, len(set.Sessions))
		for _, s := range set.Sessions {
			sessions = append(sessions, sessionRecord{
				ID:        domain.FlexibleID(s.ID),
				Duration:  s.DurationMs,
				Timestamp: domain.FormatInstant(s.Timestamp),
			})
		}
		records = append(records, savedSetRecord{
			ID:        domain.FlexibleID(set.ID),
			Name:      set.Name,
			Sessions:  sessions,
			TotalTime: set.TotalTime,
			CreatedAt: domain.FormatInstant(set.CreatedAt),
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding saved session sets: %w", err)
	}
	return string(data), nil
}

// decodeSets parses the persisted collection and reconstructs every instant.
// The persisted totalTime is kept as stored; it is never recomputed.
func decodeSets(payload string) ([]domain.SavedSessionSet, error) {
	var records []savedSetRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decoding saved session sets: %w", err)
	}

	sets := make([]domain.SavedSessionSet, 0, len(records))
	for i, rec := range records {
		createdAt, err := domain.ParseInstant(rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing createdAt of set %d: %w", i, err)
		}
		sessions := make([]domain.Session, 0, len(rec.Sessions))
		for j, sr := range rec.Sessions {
			ts, err := domain.ParseInstant(sr.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("parsing timestamp of session %d in set %d: %w", j, i, err)
			}
			sessions = append(sessions, domain.Session{
				ID:         string(sr.ID),
				DurationMs: sr.Duration,
				Timestamp:  ts,
			})
		}
		sets = append(sets, domain.SavedSessionSet{
			ID:        string(rec.ID),
			Name:      rec.Name,
			Sessions:  sessions,
			TotalTime: rec.TotalTime,
			CreatedAt: createdAt,
		})
	}
	return sets, nil
}
