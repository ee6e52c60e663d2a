package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nicky-ayoub/ebitview/internal/config"
	"github.com/nicky-ayoub/ebitview/internal/service"
	"github.com/nicky-ayoub/ebitview/internal/ui"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	logger := log.Default()

	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	imageService := service.NewImageService()

	var loader *service.Loader
	if cfg.Async {
		// Start the background worker for loading images.
		loader = service.NewLoader(imageService)
		defer loader.Close()
	}

	app := ui.NewApp(cfg, logger, imageService, loader)

	if cfg.Placeholder != "" {
		if err := app.LoadPlaceholder(cfg.Placeholder); err != nil {
			logger.Printf("Placeholder disabled: %v", err)
		}
	}
	if cfg.Path != "" {
		// Failures are logged by the app; the window still opens.
		_ = app.LoadAsync(context.Background(), cfg.Path)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
