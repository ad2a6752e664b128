package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/lapse/internal/cli/formatter"
	"github.com/alexanderramin/lapse/internal/repository"
	"github.com/alexanderramin/lapse/internal/service"
)

// resolveSetID resolves a set identifier which can be:
//   - A full set ID (passed through when it exists)
//   - A unique ID prefix, as shown by "sets list"
func resolveSetID(ctx context.Context, sets service.SessionSetService, input string) (string, error) {
	all, err := sets.Load(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, s := range all {
		if s.ID == input {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("set %s: %w", input, service.ErrSetNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("set prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// warnOnUnreadable prints a warning for degraded reads and swallows them.
// Any other error is returned unchanged.
func warnOnUnreadable(w io.Writer, err error) error {
	if err == nil || !errors.Is(err, repository.ErrStorageRead) {
		return err
	}
	fmt.Fprintln(w, formatter.Warning("Saved sets could not be read: "+err.Error()))
	return nil
}
