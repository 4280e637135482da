package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FilmType classifies a film work.  The database stores it as free text;
// anything other than the known values is read back as FilmTypeUnknown.
type FilmType string

const (
	FilmTypeMovie   FilmType = "movie"
	FilmTypeTVShow  FilmType = "tv_show"
	FilmTypeUnknown FilmType = "unknown"
)

// ParseFilmType normalizes a stored type value.
func ParseFilmType(s string) FilmType {
	switch FilmType(s) {
	case FilmTypeMovie, FilmTypeTVShow:
		return FilmType(s)
	}
	return FilmTypeUnknown
}

// Film represents a film work (movie or TV show) in the catalog.  Films are
// linked to genres through FilmGenre and to persons through FilmPerson.
// This struct corresponds to a row in the `film_work` table.
//
// Fields:
//  ID           – primary key identifier (UUID).
//  Title        – film title.
//  Description  – free-form synopsis (empty when unset).
//  CreationDate – release/creation date (nil if unknown).
//  Rating       – rating in [0, 100] (nil if unrated).
//  Type         – movie, tv_show or unknown.
//  Created      – creation timestamp.
//  Modified     – last update timestamp.
type Film struct {
	ID           uuid.UUID  // film_work.id
	Title        string     // film_work.title
	Description  string     // film_work.description
	CreationDate *time.Time // film_work.creation_date (nullable)
	Rating       *float64   // film_work.rating (nullable)
	Type         FilmType   // film_work.type
	Created      time.Time  // film_work.created
	Modified     time.Time  // film_work.modified
}

// String renders the film as "Title (YEAR)", or just the title when the
// creation date is unknown.
func (f Film) String() string {
	if f.CreationDate == nil {
		return f.Title
	}
	return fmt.Sprintf("%s (%d)", f.Title, f.CreationDate.Year())
}
