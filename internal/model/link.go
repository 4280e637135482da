package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the function a person serves on a film.
type Role string

const (
	RoleActor    Role = "actor"
	RoleDirector Role = "director"
	RoleWriter   Role = "writer"
	RoleUnknown  Role = "unknown"
)

// ParseRole maps a stored role (possibly NULL, passed as "") to a Role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleActor, RoleDirector, RoleWriter:
		return Role(s)
	}
	return RoleUnknown
}

// FilmGenre links one film to one genre.  The (FilmID, GenreID) pair is
// unique in the `genre_film_work` table.
type FilmGenre struct {
	ID      uuid.UUID // genre_film_work.id
	FilmID  uuid.UUID // genre_film_work.film_work_id
	GenreID uuid.UUID // genre_film_work.genre_id
	Created time.Time // genre_film_work.created
}

// FilmPerson links one film to one person under a role.  The same person
// may appear several times for a film with different roles.
type FilmPerson struct {
	ID       uuid.UUID // person_film_work.id
	FilmID   uuid.UUID // person_film_work.film_work_id
	PersonID uuid.UUID // person_film_work.person_id
	Role     Role      // person_film_work.role (nullable, RoleUnknown)
	Created  time.Time // person_film_work.created
}

// Credit is the read-side view of a FilmPerson joined with its Person.
type Credit struct {
	Person Person
	Role   Role
}
