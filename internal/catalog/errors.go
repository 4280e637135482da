package catalog

import "errors"

// Errors returned by Service.  Handlers map each to a fixed HTTP status; the
// wrapped cause is for logs only and never reaches the client.  Malformed
// input never produces a 400 here: bad ids are ErrNotFound and bad page
// numbers fall back to page 1.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("store unavailable")
)
