// Package repository defines the data access layer. Every mutation runs in
// its own transaction; failures roll back. The sentinel values below let
// handlers distinguish failure scenarios with errors.Is.
package repository

import "errors"

var (
	// ErrVenueNotFound is returned when a venue id does not exist.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrVenueExists is returned when another venue already has the name.
	ErrVenueExists = errors.New("venue already exists")
	// ErrArtistNotFound is returned when an artist id does not exist.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrArtistExists is returned when another artist already has the name.
	ErrArtistExists = errors.New("artist already exists")
	// ErrShowNotFound is returned when a show id does not exist.
	ErrShowNotFound = errors.New("show not found")
)
