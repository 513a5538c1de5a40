package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sqlx.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sqlx.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts a after checking the name is free; a.ID is populated on
// success.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := count(ctx, tx, `SELECT COUNT(*) FROM artists WHERE name = ?`, a.Name)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrArtistExists
		}
		id, err := insertID(ctx, tx,
			`INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
			                      website_link, seeking_venue, seeking_description)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink, a.FacebookLink,
			a.WebsiteLink, a.SeekingVenue, a.SeekingDescription)
		if err != nil {
			return err
		}
		a.ID = id
		return nil
	})
}

// Update overwrites the editable fields of artist a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := count(ctx, tx, `SELECT COUNT(*) FROM artists WHERE id = ?`, a.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrArtistNotFound
		}
		n, err = count(ctx, tx, `SELECT COUNT(*) FROM artists WHERE name = ? AND id <> ?`, a.Name, a.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrArtistExists
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(
			`UPDATE artists
			    SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?,
			        facebook_link = ?, website_link = ?, seeking_venue = ?, seeking_description = ?
			  WHERE id = ?`),
			a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink,
			a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.ID)
		return err
	})
}

// Delete removes the artist together with its shows and returns the
// artist's name.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (string, error) {
	var name string
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &name, tx.Rebind(`SELECT name FROM artists WHERE id = ?`), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM shows WHERE artist_id = ?`), id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM artists WHERE id = ?`), id)
		return err
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// GetByID fetches an artist or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var a model.Artist
	err := r.db.GetContext(ctx, &a, r.db.Rebind(
		`SELECT id, name, city, state, phone, genres, image_link, facebook_link,
		        website_link, seeking_venue, seeking_description
		   FROM artists WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Summaries lists every artist with the start times of its shows.
func (r *ArtistRepo) Summaries(ctx context.Context) ([]model.Summary, error) {
	return loadSummaries(ctx, r.db, "artists", "artist_id")
}

// Shows lists the artist's shows joined with the hosting venue.
func (r *ArtistRepo) Shows(ctx context.Context, id uint64) ([]model.ShowListing, error) {
	out := []model.ShowListing{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(
		`SELECT s.id, s.venue_id, s.artist_id, v.name AS venue_name,
		        v.image_link AS venue_image_link, s.start_time
		   FROM shows s
		   JOIN venues v ON v.id = s.venue_id
		  WHERE s.artist_id = ?
		  ORDER BY s.start_time`), id)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Options returns id/name pairs of all artists ordered by name.
func (r *ArtistRepo) Options(ctx context.Context) ([]model.Option, error) {
	out := []model.Option{}
	if err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM artists ORDER BY name, id`); err != nil {
		return nil, err
	}
	return out, nil
}
