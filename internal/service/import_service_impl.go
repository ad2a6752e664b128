package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lapse/internal/importer"
)

func (s *sessionSetService) ImportArchive(ctx context.Context, schema *importer.ImportSchema) (result ImportResult, err error) {
	if schema == nil {
		return ImportResult{}, errors.New("importing sets: no archive given")
	}
	startedAt := time.Now()
	fields := map[string]any{"set_count": len(schema.Sets)}
	defer func() {
		fields["outcome"] = string(result.Outcome)
		fields["added"] = result.Added
		s.observe(ctx, "import-sets", startedAt, fields, err)
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return ImportResult{}, formatValidationErrors(errs)
	}
	sets, err := importer.Convert(schema)
	if err != nil {
		return ImportResult{}, fmt.Errorf("converting import schema: %w", err)
	}
	if len(sets) == 0 {
		return ImportResult{Outcome: OutcomeNoOp}, nil
	}

	ok, err := s.confirm.Confirm(ctx, fmt.Sprintf("Import %d saved %s?", len(sets), plural(len(sets), "set", "sets")))
	if err != nil {
		return ImportResult{}, fmt.Errorf("confirming import: %w", err)
	}
	if !ok {
		return ImportResult{Outcome: OutcomeDeclined}, nil
	}

	added, err := s.store.Import(ctx, sets)
	if err != nil {
		return ImportResult{}, err
	}
	result = ImportResult{Outcome: OutcomeApplied, Added: added, Skipped: len(sets) - added}
	if added == 0 {
		result.Outcome = OutcomeNoOp
	}
	return result, nil
}

// ExportArchive fails rather than exporting an empty archive when the
// stored data cannot be read.
func (s *sessionSetService) ExportArchive(ctx context.Context) (*importer.ImportSchema, error) {
	sets, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return importer.Export(sets, time.Now()), nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
