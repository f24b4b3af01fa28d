package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection represents an aggregate view plus persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// Of pairs an entity with its timestamps, normalized to UTC.
func Of[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{
		Entity:   entity,
		Metadata: Metadata{CreatedAt: createdAt.UTC(), UpdatedAt: updatedAt.UTC()},
	}
}

// Entities strips metadata from a list of projections.
func Entities[T any](list []*Projection[T]) []T {
	out := make([]T, 0, len(list))
	for _, p := range list {
		if p != nil {
			out = append(out, p.Entity)
		}
	}
	return out
}
