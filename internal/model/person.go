package model

import (
	"time"

	"github.com/google/uuid"
)

// Person is anyone credited on a film: actor, director or writer.
// This struct corresponds to a row in the `person` table.
type Person struct {
	ID       uuid.UUID // person.id
	FullName string    // person.full_name
	Created  time.Time // person.created
	Modified time.Time // person.modified
}

func (p Person) String() string { return p.FullName }
