// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// FilmsChangedEvent is published by the data loader after it writes film,
// genre or person rows.  FilmIDs lists the films touched; an empty list
// means "anything may have changed".  The API reacts by purging its
// response cache, so the event carries no film data itself.
type FilmsChangedEvent struct {
	FilmIDs   []string  `json:"film_ids"`
	Source    string    `json:"source,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}
