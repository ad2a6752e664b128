package service

import (
	"context"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/importer"
)

// Outcome describes what a state-changing use case did.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeNoOp     Outcome = "no-op"
	OutcomeDeclined Outcome = "declined"
)

// SaveResult holds the outcome of saving the current batch. Set is only
// populated when the outcome is OutcomeApplied.
type SaveResult struct {
	Outcome Outcome
	Set     *domain.SavedSessionSet
}

// ImportResult reports what an archive import did. Skipped counts sets whose
// IDs were already stored.
type ImportResult struct {
	Outcome Outcome
	Added   int
	Skipped int
}

// PeriodBreakdown is a summary period with its per-day series.
type PeriodBreakdown struct {
	Key    string
	Label  string
	Period domain.SessionSummaryPeriod
	Days   []domain.DayTotal
}

// Batch is the current, unsaved sequence of sessions.
type Batch interface {
	Batch() []domain.Session
	TotalTime() int64
	Reset()
}

// SetStore persists saved session sets.
type SetStore interface {
	Load(ctx context.Context) ([]domain.SavedSessionSet, error)
	Get(ctx context.Context, id string) (*domain.SavedSessionSet, bool, error)
	Save(ctx context.Context, batch []domain.Session) (*domain.SavedSessionSet, error)
	Delete(ctx context.Context, id string) (bool, error)
	Import(ctx context.Context, sets []domain.SavedSessionSet) (int, error)
	Clear(ctx context.Context) error
}

// Confirmer asks the user to approve a state-changing operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AutoConfirm approves every prompt.
var AutoConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// SessionSetService is the use-case surface consumed by the CLI and TUI.
//
// Load and Periods degrade on unreadable storage: they return an empty
// result together with an error matching repository.ErrStorageRead, which
// callers surface as a warning.
type SessionSetService interface {
	Load(ctx context.Context) ([]domain.SavedSessionSet, error)
	Get(ctx context.Context, id string) (*domain.SavedSessionSet, error)
	SaveBatch(ctx context.Context, batch Batch) (SaveResult, error)
	DeleteSet(ctx context.Context, id string) (Outcome, error)
	ClearAll(ctx context.Context) (Outcome, error)
	ImportArchive(ctx context.Context, schema *importer.ImportSchema) (ImportResult, error)
	ExportArchive(ctx context.Context) (*importer.ImportSchema, error)
	Periods(ctx context.Context) ([]domain.SessionSummaryPeriod, error)
	Breakdown(ctx context.Context, key string) (*PeriodBreakdown, error)
}
