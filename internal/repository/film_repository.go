// Package repository contains data access logic separated from HTTP handlers.
// This file defines the film repository: read-only queries over film_work and
// its genre and person link tables.  The API never writes, so there are no
// insert or update methods here; rows are maintained by the external loader.
package repository

import (
	"context"      // context carries request deadlines down to the driver
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-catalog-api/internal/model"
)

const filmColumns = "id, title, description, creation_date, rating, type, created, modified"

const (
	qCountFilms = "SELECT COUNT(*) FROM film_work"
	// created is the insertion order; id breaks ties between rows loaded in
	// the same batch so pages stay stable.
	qListFilms = "SELECT " + filmColumns + " FROM film_work ORDER BY created, id LIMIT ? OFFSET ?"
	qGetFilm   = "SELECT " + filmColumns + " FROM film_work WHERE id = ?"

	qGenresByFilm = `SELECT gfw.film_work_id, g.id, g.name, g.description
		FROM genre_film_work gfw
		JOIN genre g ON g.id = gfw.genre_id
		WHERE gfw.film_work_id IN (%s)
		ORDER BY g.name`
	qCreditsByFilm = `SELECT pfw.film_work_id, pfw.person_id, pfw.role, p.full_name
		FROM person_film_work pfw
		JOIN person p ON p.id = pfw.person_id
		WHERE pfw.film_work_id IN (%s)
		ORDER BY p.full_name`
)

// FilmRepo encapsulates all database queries related to films.  It depends
// on a sql.DB connection pool which is configured in package database.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the provided DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo {
	return &FilmRepo{db: db}
}

// CountFilms returns the total number of film_work rows.
func (r *FilmRepo) CountFilms(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, qCountFilms).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListFilms returns at most limit films starting at offset, in insertion order.
func (r *FilmRepo) ListFilms(ctx context.Context, limit, offset int) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx, qListFilms, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Film, 0, limit)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFilm fetches a film by its id.  It returns ErrFilmNotFound if no row
// matches.
func (r *FilmRepo) GetFilm(ctx context.Context, id uuid.UUID) (*model.Film, error) {
	f, err := scanFilm(r.db.QueryRowContext(ctx, qGetFilm, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GenresByFilm loads the genres linked to each of the given films in one
// query.  Films without genres are absent from the returned map.  Duplicate
// links are returned as stored; deduplication is the projection's job.
func (r *FilmRepo) GenresByFilm(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]model.Genre, error) {
	out := make(map[uuid.UUID][]model.Genre, len(filmIDs))
	if len(filmIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, inQuery(qGenresByFilm, len(filmIDs)), idArgs(filmIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			link model.FilmGenre
			g    model.Genre
			desc sql.NullString
		)
		if err := rows.Scan(&link.FilmID, &link.GenreID, &g.Name, &desc); err != nil {
			return nil, err
		}
		g.ID = link.GenreID
		if desc.Valid {
			g.Description = &desc.String
		}
		out[link.FilmID] = append(out[link.FilmID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreditsByFilm loads every person linked to the given films together with
// the role they hold.  A NULL role is read as model.RoleUnknown.
func (r *FilmRepo) CreditsByFilm(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]model.Credit, error) {
	out := make(map[uuid.UUID][]model.Credit, len(filmIDs))
	if len(filmIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, inQuery(qCreditsByFilm, len(filmIDs)), idArgs(filmIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			link model.FilmPerson
			p    model.Person
			role sql.NullString
		)
		if err := rows.Scan(&link.FilmID, &link.PersonID, &role, &p.FullName); err != nil {
			return nil, err
		}
		link.Role = model.ParseRole(role.String)
		p.ID = link.PersonID
		out[link.FilmID] = append(out[link.FilmID], model.Credit{Person: p, Role: link.Role})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping reports whether the database is reachable.  Used by the readiness probe.
func (r *FilmRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFilm(s rowScanner) (model.Film, error) {
	var (
		f       model.Film
		desc    sql.NullString
		created sql.NullTime
		rating  sql.NullFloat64
		typ     sql.NullString
	)
	if err := s.Scan(&f.ID, &f.Title, &desc, &created, &rating, &typ, &f.Created, &f.Modified); err != nil {
		return model.Film{}, err
	}
	f.Description = desc.String
	if created.Valid {
		d := created.Time
		f.CreationDate = &d
	}
	if rating.Valid {
		v := rating.Float64
		f.Rating = &v
	}
	f.Type = model.ParseFilmType(typ.String)
	return f, nil
}

// inQuery expands the single %s in q into n comma-separated placeholders.
func inQuery(q string, n int) string {
	ph := strings.TrimSuffix(strings.Repeat("?,", n), ",")
	return strings.Replace(q, "%s", ph, 1)
}

func idArgs(ids []uuid.UUID) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
