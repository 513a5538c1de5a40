package model

import "time"

// Show links one artist to one venue at a start time. StartTime is stored
// in UTC.
type Show struct {
    ID        uint64    `db:"id"`         // shows.id
    ArtistID  uint64    `db:"artist_id"`  // shows.artist_id
    VenueID   uint64    `db:"venue_id"`   // shows.venue_id
    StartTime time.Time `db:"start_time"` // shows.start_time
}

// ShowListing is a show joined with the names and images of its venue and
// artist. Queries fill only the columns they need; the venue detail page
// for instance leaves VenueName empty.
type ShowListing struct {
    ID              uint64    `db:"id"`
    VenueID         uint64    `db:"venue_id"`
    VenueName       string    `db:"venue_name"`
    VenueImageLink  string    `db:"venue_image_link"`
    ArtistID        uint64    `db:"artist_id"`
    ArtistName      string    `db:"artist_name"`
    ArtistImageLink string    `db:"artist_image_link"`
    StartTime       time.Time `db:"start_time"`
}

// Option is an id/name pair used to fill select boxes.
type Option struct {
    ID   uint64 `db:"id"`
    Name string `db:"name"`
}
