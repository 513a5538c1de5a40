package model

// Venue is a location that can host shows. It corresponds to a row in
// the `venues` table.
type Venue struct {
    ID                 uint64 `db:"id"`                  // venues.id
    Name               string `db:"name"`                // venues.name
    City               string `db:"city"`                // venues.city
    State              string `db:"state"`               // venues.state (two-letter code)
    Address            string `db:"address"`             // venues.address
    Phone              string `db:"phone"`               // venues.phone, XXX-XXX-XXXX or empty
    ImageLink          string `db:"image_link"`          // venues.image_link
    FacebookLink       string `db:"facebook_link"`       // venues.facebook_link
    Genres             Genres `db:"genres"`              // venues.genres
    WebsiteLink        string `db:"website_link"`        // venues.website_link
    SeekingTalent      bool   `db:"seeking_talent"`      // venues.seeking_talent
    SeekingDescription string `db:"seeking_description"` // venues.seeking_description
}
