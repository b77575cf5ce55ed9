package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/laserpunk/internal/game"
	"github.com/vovakirdan/laserpunk/internal/levels"
	"github.com/vovakirdan/laserpunk/internal/registry"
	"github.com/vovakirdan/laserpunk/internal/rooms"
)

// campaign is the resolved set of rooms a command works on.
type campaign struct {
	id      string
	title   string
	start   string
	catalog rooms.Catalog
	loader  *levels.Loader // nil unless the rooms come from files
	dir     string         // set for --levels directories
}

// openCampaign resolves --levels / --campaign / --start against the config.
func openCampaign() (campaign, error) {
	if dir := cfg.Game.LevelsDir; dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return campaign{}, err
		}
		l := levels.NewLoader(abs)
		c := campaign{
			id:      "dir:" + filepath.Base(abs),
			title:   filepath.Base(abs),
			start:   cfg.Game.StartRoom,
			catalog: l,
			loader:  l,
			dir:     abs,
		}
		if flagStart != "" {
			c.start = flagStart
		}
		return c, nil
	}

	cat, info, err := registry.Create(flagCampaign)
	if err != nil {
		return campaign{}, fmt.Errorf("%w (run 'laserpunk rooms' to list campaigns)", err)
	}
	c := campaign{
		id:      info.ID,
		title:   info.Title,
		start:   info.StartRoom,
		catalog: cat,
	}
	c.loader, _ = cat.(*levels.Loader)
	if flagStart != "" {
		c.start = flagStart
	}
	return c, nil
}

// newSession starts a game over the campaign.
func (c campaign) newSession(l *log.Logger) (*game.Session, error) {
	return game.New(game.Options{
		Catalog:     c.catalog,
		StartRoom:   c.start,
		StartAccess: cfg.Game.StartAccess,
		MaxHealth:   cfg.Game.MaxHealth,
		Logger:      l,
	})
}
