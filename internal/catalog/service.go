// Package catalog turns rows from the film store into the API's documents.
// It owns the projection of a film and its links into a flat Document, the
// page arithmetic for listings, and the mapping of store failures into the
// NotFound / Unavailable errors the handlers render.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/movie-catalog-api/internal/model"
	"github.com/iliyamo/movie-catalog-api/internal/repository"
)

// Store is the read interface the service needs from persistence.
// repository.FilmRepo implements it against MySQL.
type Store interface {
	CountFilms(ctx context.Context) (int, error)
	ListFilms(ctx context.Context, limit, offset int) ([]model.Film, error)
	GetFilm(ctx context.Context, id uuid.UUID) (*model.Film, error)
	GenresByFilm(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]model.Genre, error)
	CreditsByFilm(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]model.Credit, error)
}

// DefaultQueryTimeout bounds a single list or detail call.
const DefaultQueryTimeout = 5 * time.Second

// Service answers list and detail requests.  It holds no mutable state and
// is safe for concurrent use.
type Service struct {
	store    Store
	pageSize int
	timeout  time.Duration
}

// NewService builds a Service.  Non-positive pageSize or timeout fall back
// to DefaultPageSize and DefaultQueryTimeout.
func NewService(store Store, pageSize int, timeout time.Duration) *Service {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Service{store: store, pageSize: pageSize, timeout: timeout}
}

// PageSize reports the configured listing page size.
func (s *Service) PageSize() int { return s.pageSize }

// ListMovies returns the requested page of films in insertion order.
// The page number is clamped into range, so the only errors are store
// failures (ErrUnavailable).
func (s *Service) ListMovies(ctx context.Context, page int) (PageInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	count, err := s.store.CountFilms(ctx)
	if err != nil {
		return PageInfo{}, storeErr("count films", err)
	}
	p := Paginate(count, s.pageSize, page)
	info := PageInfo{
		Count:      p.Count,
		TotalPages: p.TotalPages,
		Prev:       p.Prev,
		Next:       p.Next,
		Results:    []Document{},
	}
	if p.Limit() == 0 {
		return info, nil
	}

	films, err := s.store.ListFilms(ctx, p.Size, p.Offset())
	if err != nil {
		return PageInfo{}, storeErr("list films", err)
	}
	genres, credits, err := s.loadLinks(ctx, films)
	if err != nil {
		return PageInfo{}, err
	}
	info.Results = ProjectAll(films, genres, credits)
	return info, nil
}

// GetMovie returns the document for the film with the given id.  A
// malformed id is reported the same way as a missing one: ErrNotFound.
func (s *Service) GetMovie(ctx context.Context, rawID string) (Document, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Document{}, fmt.Errorf("parse id %q: %w", rawID, ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	film, err := s.store.GetFilm(ctx, id)
	if err != nil {
		return Document{}, storeErr("get film", err)
	}
	films := []model.Film{*film}
	genres, credits, err := s.loadLinks(ctx, films)
	if err != nil {
		return Document{}, err
	}
	return Project(*film, genres[film.ID], credits[film.ID]), nil
}

// loadLinks fetches genres and credits for films concurrently.
func (s *Service) loadLinks(ctx context.Context, films []model.Film) (map[uuid.UUID][]model.Genre, map[uuid.UUID][]model.Credit, error) {
	ids := make([]uuid.UUID, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}

	var (
		genres  map[uuid.UUID][]model.Genre
		credits map[uuid.UUID][]model.Credit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if genres, err = s.store.GenresByFilm(gctx, ids); err != nil {
			return storeErr("load genres", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if credits, err = s.store.CreditsByFilm(gctx, ids); err != nil {
			return storeErr("load credits", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return genres, credits, nil
}

// storeErr classifies a store failure.  Anything but a missing film means
// the store could not answer: unreachable, timed out or returned bad rows.
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrFilmNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
