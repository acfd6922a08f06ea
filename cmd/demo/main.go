package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/unitykit/engine/internal/config"
	"github.com/unitykit/engine/internal/core/assets"
	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/internal/core/loop"
	"github.com/unitykit/engine/internal/core/observability/log"
	"github.com/unitykit/engine/internal/core/physics"
	"github.com/unitykit/engine/internal/core/render"
	"github.com/unitykit/engine/internal/server"
)

func main() {
	configPath := flag.String("config", "engine.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.New(log.ParseLevel(cfg.Logging.Level))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builder := assets.NewBuilder(assets.NewResolver(cfg.Assets.SearchPaths...), logger)
	scene := loadOrSynthesize(builder, cfg, logger)

	dispatcher := loop.NewDispatcher(logger)
	driver := loop.NewDriver(scene, dispatcher,
		time.Duration(float64(time.Second)/cfg.Engine.TickRate),
		time.Duration(float64(time.Second)/cfg.Engine.FixedTickRate),
		logger)
	contacts := physics.NewContactDispatcher(engine.Cache(), dispatcher, logger)

	go dispatcher.Run(ctx)
	go driver.Run(ctx)

	// Synthetic contact pair so the cache fan-out path shows up in the demo;
	// a real embedding would feed this from the host physics world.
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
		a, okA := scene.Find("Ball")
		b, okB := scene.Find("Spinner")
		if okA && okB {
			contacts.ContactBegan(physics.Contact{A: a, B: b})
			contacts.ContactEnded(physics.Contact{A: a, B: b})
		}
	}()

	var inspector *server.Inspector
	if cfg.Inspector.Enabled {
		interval, err := time.ParseDuration(cfg.Inspector.SnapshotInterval)
		if err != nil {
			interval = time.Second
		}
		inspector = server.NewInspector(scene, engine.Cache(), interval, logger)
		if err := inspector.Start(ctx, cfg.Inspector.Addr); err != nil {
			logger.Error("inspector start failed", zap.Error(err))
		}
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopCh

	cancel()
	if inspector != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 3*time.Second)
		defer stop()
		if err := inspector.Stop(shutdownCtx); err != nil {
			logger.Error("inspector stop failed", zap.Error(err))
		}
	}
	logger.Info("engine stopped",
		zap.Uint64("dropped_updates", dispatcher.Dropped(loop.CallbackUpdate)))
}

// loadOrSynthesize builds the configured scene file, or a small in-code demo
// scene when none is present on the search paths.
func loadOrSynthesize(b *assets.Builder, cfg config.Config, logger *log.Logger) *engine.Scene {
	opts := engine.Options{
		Name:       cfg.Engine.SceneName,
		Mode:       engine.Singleton,
		DeferStart: cfg.Engine.DeferStart,
		Logger:     logger,
	}
	scene, err := b.BuildScene(cfg.Engine.SceneName, opts)
	if err == nil {
		logger.Info("scene loaded", zap.String("scene", cfg.Engine.SceneName))
		return scene
	}
	if !errors.Is(err, engine.ErrResourceNotFound) {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger.Info("scene file not found, using built-in demo", zap.String("scene", cfg.Engine.SceneName))
	scene = engine.NewScene(opts)

	spinner := engine.NewGameObject("Spinner")
	if _, err := spinner.AddComponent(&Rotator{DegreesPerSecond: 90}); err != nil {
		logger.Error("demo setup failed", zap.Error(err))
	}
	scene.AddGameObject(spinner)

	ball := engine.WrapPrimitive(render.NewGeometryNode("Ball",
		render.Box{Min: render.V3(-0.5, -0.5, -0.5), Max: render.V3(0.5, 0.5, 0.5)}))
	if _, err := ball.AddComponent(engine.NewRigidBody(1)); err != nil {
		logger.Error("demo setup failed", zap.Error(err))
	}
	if _, err := ball.AddComponent(&engine.SphereCollider{Radius: 0.5}); err != nil {
		logger.Error("demo setup failed", zap.Error(err))
	}
	scene.AddGameObject(ball)

	return scene
}
