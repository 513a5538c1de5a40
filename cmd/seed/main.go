// Command seed loads demo venues, artists and shows from a YAML fixture
// into the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/logger/sl"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/seed"
)

func main() {
	var path string
	var migrate bool
	flag.StringVar(&path, "file", "fixtures/fyyur.yaml", "fixture file to load")
	flag.BoolVar(&migrate, "migrate", true, "apply migrations before seeding")
	flag.Parse()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fixture, err := seed.LoadFile(path)
	if err != nil {
		log.Error("failed to load fixture", sl.Err(err))
		os.Exit(1)
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Error("failed to migrate database", sl.Err(err))
			os.Exit(1)
		}
	}

	s := seed.New(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		cfg.Location(),
		log,
	)
	res, err := s.Run(ctx, fixture)
	if err != nil {
		log.Error("seeding failed", sl.Err(err))
		os.Exit(1)
	}
	fmt.Printf("venues: %d, artists: %d, shows: %d, skipped: %d\n", res.Venues, res.Artists, res.Shows, res.Skipped)
}
