package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/ajitpratap0/pokedex/internal/config"
	"github.com/ajitpratap0/pokedex/internal/controller"
	"github.com/ajitpratap0/pokedex/internal/metrics"
	"github.com/ajitpratap0/pokedex/internal/store"
)

const (
	AppID    = "com.github.ajitpratap0.pokedex"
	AppTitle = "Pokédex"
)

// Run opens the catalog window, loads the active records and blocks until
// the window is closed.
func Run(ctx context.Context, st store.Store, cfg config.GUIConfig, logger zerolog.Logger) {
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppTitle)
	window.Resize(fyne.NewSize(cfg.Width, cfg.Height))

	view := NewView(window)
	ctrl := controller.New(st, view, logger)
	view.SetController(ctx, ctrl)

	window.SetContent(view.Content())
	window.SetOnClosed(func() {
		logger.Info().Interface("metrics", metrics.Snapshot()).Msg("window closed")
	})

	_ = ctrl.Refresh(ctx)

	logger.Info().Float32("width", cfg.Width).Float32("height", cfg.Height).Msg("window opened")
	window.ShowAndRun()
}
