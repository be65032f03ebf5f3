package main

import (
	"fmt"
	"os"

	"github.com/decker502/thunderwings/pkg/app"
	"github.com/decker502/thunderwings/pkg/config"
	"github.com/decker502/thunderwings/pkg/embedded"
	"github.com/decker502/thunderwings/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	opts, err := config.LoadRuntime(os.Args[1:])
	if err != nil {
		logger.Setup("info", nil).Error().Err(err).Msg("Invalid options")
		os.Exit(2)
	}
	if opts.ShowVersion {
		for _, line := range config.VersionLines(config.ReadBuildInfo()) {
			fmt.Println(line)
		}
		return
	}
	log := logger.Setup(opts.LogLevel, nil)
	log.Info().Str("version", config.Version).Msg("Welcome!")

	embedded.Init(dataFS)

	game, err := app.NewApp(opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start")
		os.Exit(1)
	}
	defer game.Shutdown()

	ebiten.SetWindowSize(game.WindowSize())
	ebiten.SetWindowTitle("Thunder Wings")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("Game loop stopped")
		game.Shutdown()
		os.Exit(1)
	}
}
