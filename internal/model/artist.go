package model

// Artist is a performer that can be booked for shows. It corresponds to a
// row in the `artists` table.
type Artist struct {
    ID                 uint64 `db:"id"`                  // artists.id
    Name               string `db:"name"`                // artists.name
    City               string `db:"city"`                // artists.city
    State              string `db:"state"`               // artists.state
    Phone              string `db:"phone"`               // artists.phone
    Genres             Genres `db:"genres"`              // artists.genres
    ImageLink          string `db:"image_link"`          // artists.image_link
    FacebookLink       string `db:"facebook_link"`       // artists.facebook_link
    WebsiteLink        string `db:"website_link"`        // artists.website_link
    SeekingVenue       bool   `db:"seeking_venue"`       // artists.seeking_venue
    SeekingDescription string `db:"seeking_description"` // artists.seeking_description
}
