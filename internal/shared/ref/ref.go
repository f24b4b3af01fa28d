// Package ref generates and parses the opaque identifiers used across contexts.
package ref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidReference is returned for identifiers that are not well-formed.
var ErrInvalidReference = errors.New("invalid reference")

// New returns a time-ordered identifier, so sorting by id follows insertion order.
func New() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Parse validates a client-supplied identifier.
func Parse(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidReference, raw)
	}
	return id, nil
}

// ParseList splits a comma separated list and parses every element.
// Any malformed element fails the whole list.
func ParseList(raw string) ([]uuid.UUID, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	seen := make(map[uuid.UUID]struct{}, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, err := Parse(part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: empty id list", ErrInvalidReference)
	}
	return ids, nil
}
