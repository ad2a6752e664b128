package importer

import (
	"fmt"

	"github.com/alexanderramin/lapse/internal/domain"
)

// ValidateImportSchema checks the archive for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Version < 0 || schema.Version > ArchiveVersion {
		errs = append(errs, fmt.Errorf("version %d is not supported (max %d)", schema.Version, ArchiveVersion))
	}

	seen := make(map[domain.FlexibleID]int)
	for i := range schema.Sets {
		set := &schema.Sets[i]
		path := fmt.Sprintf("sets[%d]", i)

		if set.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", path))
		} else if first, dup := seen[set.ID]; dup {
			errs = append(errs, fmt.Errorf("%s.id %q duplicates sets[%d]", path, set.ID, first))
		} else {
			seen[set.ID] = i
		}

		if set.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		}
		errs = append(errs, validateInstant(path+".createdAt", set.CreatedAt)...)

		if len(set.Sessions) == 0 {
			errs = append(errs, fmt.Errorf("%s.sessions must not be empty", path))
		}
		if set.TotalTime != nil {
			if sum := sessionSum(set.Sessions); *set.TotalTime != sum {
				errs = append(errs, fmt.Errorf("%s.totalTime %d does not match the session durations (%d)", path, *set.TotalTime, sum))
			}
		}
		errs = append(errs, validateSessions(path, set.Sessions)...)
	}

	return errs
}

func validateSessions(setPath string, sessions []SessionImport) []error {
	var errs []error
	for j, s := range sessions {
		path := fmt.Sprintf("%s.sessions[%d]", setPath, j)
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", path))
		}
		if s.Duration <= 0 {
			errs = append(errs, fmt.Errorf("%s.duration must be positive, got %d", path, s.Duration))
		}
		errs = append(errs, validateInstant(path+".timestamp", s.Timestamp)...)
	}
	return errs
}

func validateInstant(path, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", path)}
	}
	if _, err := domain.ParseInstant(value); err != nil {
		return []error{fmt.Errorf("%s: invalid instant %q (expected RFC 3339)", path, value)}
	}
	return nil
}

func sessionSum(sessions []SessionImport) int64 {
	var sum int64
	for _, s := range sessions {
		sum += s.Duration
	}
	return sum
}
