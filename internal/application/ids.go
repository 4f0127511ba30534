package application

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
)

// canonicalID parses a client-supplied id and returns it in the hyphenated
// lowercase form the stores key on. Anything unparseable is NotFound.
func canonicalID(kind, id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%s %q: %w", kind, id, errs.ErrNotFound)
	}
	return parsed.String(), nil
}
