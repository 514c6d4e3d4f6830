package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/milk9111/tower/common"
	"github.com/milk9111/tower/prefabs"
	"github.com/milk9111/tower/telemetry"
)

func main() {
	// A missing .env is fine; flags and defaults cover everything.
	_ = godotenv.Load()

	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	startLevel := flag.Int("level", 0, "level index to start on")
	metricsAddr := flag.String("metrics", os.Getenv("TOWER_METRICS_ADDR"), "serve /metrics and /state on this address (empty disables)")
	prefabDir := flag.String("prefabs", envOr("TOWER_PREFAB_DIR", "prefabs"), "on-disk prefab directory for hot reload (empty uses embedded only)")
	mute := flag.Bool("mute", false, "disable sound output")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	prefabs.SetDir(*prefabDir)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("tower")
	ebiten.SetTPS(common.TPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	recorder := telemetry.NewRecorder()
	if *metricsAddr != "" {
		router := telemetry.NewRouter(telemetry.RouterConfig{
			Recorder: recorder,
			Limiter:  rate.NewLimiter(rate.Every(100*time.Millisecond), 20),
		})
		g.Go(func() error { return telemetry.Serve(gctx, *metricsAddr, router) })
		log.Info().Str("addr", *metricsAddr).Msg("metrics server enabled")
	}

	var reloads <-chan string
	if *prefabDir != "" {
		watcher, err := prefabs.NewWatcher(*prefabDir, filepath.Join(*prefabDir, "scripts"))
		if err != nil {
			log.Warn().Err(err).Str("dir", *prefabDir).Msg("prefab hot reload disabled")
		} else {
			reloads = watcher.Events
			g.Go(func() error { return watcher.Run(gctx) })
			g.Go(func() error {
				for err := range watcher.Errors {
					log.Warn().Err(err).Msg("prefab watcher")
				}
				return nil
			})
		}
	}

	game := NewGame(GameConfig{
		StartLevel: *startLevel,
		Debug:      *debug,
		Mute:       *mute,
		Recorder:   recorder,
		Reloads:    reloads,
	})

	err := ebiten.RunGame(game)
	stop()
	if werr := g.Wait(); werr != nil {
		log.Error().Err(werr).Msg("background task")
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("game exited")
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
