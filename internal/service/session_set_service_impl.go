package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/report"
	"github.com/alexanderramin/lapse/internal/repository"
	"github.com/alexanderramin/lapse/internal/timer"
)

type sessionSetService struct {
	store    SetStore
	confirm  Confirmer
	loc      *time.Location
	observer UseCaseObserver
}

// NewSessionSetService wires the session set use cases. loc controls period
// bucketing; nil means time.Local.
func NewSessionSetService(store SetStore, confirm Confirmer, loc *time.Location, observers ...UseCaseObserver) SessionSetService {
	if confirm == nil {
		confirm = AutoConfirm
	}
	if loc == nil {
		loc = time.Local
	}
	return &sessionSetService{
		store:    store,
		confirm:  confirm,
		loc:      loc,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionSetService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *sessionSetService) Load(ctx context.Context) (sets []domain.SavedSessionSet, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		fields["set_count"] = len(sets)
		s.observe(ctx, "load-sets", startedAt, fields, err)
	}()

	sets, err = s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrStorageRead) {
			fields["fallback"] = "empty"
			return []domain.SavedSessionSet{}, err
		}
		return nil, err
	}
	return sets, nil
}

func (s *sessionSetService) Get(ctx context.Context, id string) (*domain.SavedSessionSet, error) {
	set, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("set %s: %w", id, ErrSetNotFound)
	}
	return set, nil
}

func (s *sessionSetService) SaveBatch(ctx context.Context, batch Batch) (result SaveResult, err error) {
	startedAt := time.Now()
	sessions := batch.Batch()
	fields := map[string]any{
		"session_count": len(sessions),
		"total_ms":      batch.TotalTime(),
	}
	defer func() {
		fields["outcome"] = string(result.Outcome)
		s.observe(ctx, "save-batch", startedAt, fields, err)
	}()

	if len(sessions) == 0 {
		return SaveResult{Outcome: OutcomeNoOp}, nil
	}

	prompt := fmt.Sprintf("Save %d %s totalling %s?",
		len(sessions), plural(len(sessions), "session", "sessions"), timer.FormatTime(batch.TotalTime()))
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		return SaveResult{}, fmt.Errorf("confirming save: %w", err)
	}
	if !ok {
		return SaveResult{Outcome: OutcomeDeclined}, nil
	}

	set, err := s.store.Save(ctx, sessions)
	if err != nil {
		// The batch is kept so the user can retry.
		return SaveResult{}, err
	}
	if set == nil {
		return SaveResult{Outcome: OutcomeNoOp}, nil
	}
	batch.Reset()
	fields["set_id"] = set.ID
	return SaveResult{Outcome: OutcomeApplied, Set: set}, nil
}

func (s *sessionSetService) DeleteSet(ctx context.Context, id string) (outcome Outcome, err error) {
	startedAt := time.Now()
	fields := map[string]any{"set_id": id}
	defer func() {
		fields["outcome"] = string(outcome)
		s.observe(ctx, "delete-set", startedAt, fields, err)
	}()

	set, found, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return OutcomeNoOp, nil
	}

	prompt := fmt.Sprintf("Delete %q (%d %s, %s)?", set.Name, set.SessionCount(),
		plural(set.SessionCount(), "session", "sessions"), timer.FormatTime(set.TotalTime))
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return OutcomeDeclined, nil
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !deleted {
		return OutcomeNoOp, nil
	}
	return OutcomeApplied, nil
}

func (s *sessionSetService) ClearAll(ctx context.Context) (outcome Outcome, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		fields["outcome"] = string(outcome)
		s.observe(ctx, "clear-sets", startedAt, fields, err)
	}()

	sets, err := s.store.Load(ctx)
	if err != nil && !errors.Is(err, repository.ErrStorageRead) {
		return "", err
	}
	// Unreadable data is cleared like any other.
	if err == nil && len(sets) == 0 {
		return OutcomeNoOp, nil
	}
	fields["set_count"] = len(sets)

	prompt := fmt.Sprintf("Delete all %d saved %s?", len(sets), plural(len(sets), "set", "sets"))
	if err != nil {
		prompt = "Saved sets are unreadable. Delete them?"
	}
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("confirming clear: %w", err)
	}
	if !ok {
		return OutcomeDeclined, nil
	}

	if err := s.store.Clear(ctx); err != nil {
		return "", err
	}
	return OutcomeApplied, nil
}

func (s *sessionSetService) Periods(ctx context.Context) (periods []domain.SessionSummaryPeriod, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		fields["period_count"] = len(periods)
		s.observe(ctx, "summarize-periods", startedAt, fields, err)
	}()

	sets, err := s.store.Load(ctx)
	if err != nil && !errors.Is(err, repository.ErrStorageRead) {
		return nil, err
	}
	return report.Summarize(sets, s.loc), err
}

// Breakdown resolves key with report.PeriodKey. An empty key selects the
// most recent period.
func (s *sessionSetService) Breakdown(ctx context.Context, key string) (*PeriodBreakdown, error) {
	periods, err := s.Periods(ctx)
	if err != nil && !errors.Is(err, repository.ErrStorageRead) {
		return nil, err
	}

	var period domain.SessionSummaryPeriod
	found := false
	if key == "" {
		if len(periods) > 0 {
			period, found = periods[0], true
		}
	} else {
		period, found = report.FindPeriod(periods, key)
	}
	if !found {
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("no saved sets: %w", ErrPeriodNotFound)
		}
		return nil, fmt.Errorf("period %q: %w", key, ErrPeriodNotFound)
	}

	return &PeriodBreakdown{
		Key:    report.PeriodKey(period),
		Label:  report.FormatPeriodLabel(period),
		Period: period,
		Days:   report.Breakdown(period),
	}, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
