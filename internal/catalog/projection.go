package catalog

import (
	"sort"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-catalog-api/internal/model"
)

const dateLayout = "2006-01-02"

// Document is the flat JSON shape of one film: the film's own columns plus
// its genres and credited persons collapsed into name lists.  Timestamps are
// deliberately absent.
type Document struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	CreationDate *string        `json:"creation_date"`
	Rating       *float64       `json:"rating"`
	Type         model.FilmType `json:"type"`
	Genres       []string       `json:"genres"`
	Actors       []string       `json:"actors"`
	Directors    []string       `json:"directors"`
	Writers      []string       `json:"writers"`
}

// Project builds the Document for film from its linked genres and credits.
// Name lists are deduplicated and sorted, so projecting the same input twice
// yields equal documents.  Credits with an unknown role are dropped.
func Project(film model.Film, genres []model.Genre, credits []model.Credit) Document {
	doc := Document{
		ID:          film.ID,
		Title:       film.Title,
		Description: film.Description,
		Type:        film.Type,
	}
	if doc.Type == "" {
		doc.Type = model.FilmTypeUnknown
	}
	if film.CreationDate != nil {
		d := film.CreationDate.Format(dateLayout)
		doc.CreationDate = &d
	}
	if film.Rating != nil {
		r := *film.Rating
		doc.Rating = &r
	}

	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	doc.Genres = distinct(names)

	byRole := map[model.Role][]string{}
	for _, c := range credits {
		byRole[c.Role] = append(byRole[c.Role], c.Person.FullName)
	}
	doc.Actors = distinct(byRole[model.RoleActor])
	doc.Directors = distinct(byRole[model.RoleDirector])
	doc.Writers = distinct(byRole[model.RoleWriter])
	return doc
}

// ProjectAll projects films in order, looking up each film's links by id.
func ProjectAll(films []model.Film, genres map[uuid.UUID][]model.Genre, credits map[uuid.UUID][]model.Credit) []Document {
	out := make([]Document, 0, len(films))
	for _, f := range films {
		out = append(out, Project(f, genres[f.ID], credits[f.ID]))
	}
	return out
}

// distinct returns the sorted set of names; never nil so it encodes as [].
func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
