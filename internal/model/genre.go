package model

import (
	"time"

	"github.com/google/uuid"
)

// Genre is a named category a film can belong to.  Names are unique.
// This struct corresponds to a row in the `genre` table.
type Genre struct {
	ID          uuid.UUID // genre.id
	Name        string    // genre.name
	Description *string   // genre.description (nullable)
	Created     time.Time // genre.created
	Modified    time.Time // genre.modified
}

func (g Genre) String() string { return g.Name }
