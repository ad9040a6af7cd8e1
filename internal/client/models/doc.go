// Package models defines the client-side data shapes exchanged with the
// tripcal backend: the user profile, events grouped by date, address search
// results and the calendar display mode.
//
// Events are a read-only mirror of the server. Nothing in the client edits an
// Event in place; lists are replaced wholesale after every refetch, and
// callers that hand events to other components should pass clones.
package models
