package main

import (
	"context"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids-flocking/internal/viewer"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "simulation"
	app.Usage = "Interactive flocking simulation"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Value: "", Usage: "JSON or YAML config file; defaults apply when empty"},
		cli.StringFlag{Name: "schema", Value: "", Usage: "JSON schema overriding the embedded one"},
		cli.BoolFlag{Name: "watch", Usage: "Reload steering weights when the config file changes"},
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
	}
	app.Action = runAction

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAction(c *cli.Context) error {
	ctx := context.Background()
	configFile := c.String("config")
	schemaFile := c.String("schema")

	logger := golog.DefaultLogger
	if c.Bool("debug") {
		logger = golog.New(golog.DebugLevel, os.Stdout)
	}

	cfg, err := simulation.LoadConfigOrDefault(configFile, schemaFile)
	if err != nil {
		return err
	}

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return err
	}
	if err := system.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = system.Stop(ctx) }()

	var reloads <-chan *simulation.Config
	if c.Bool("watch") && configFile != "" {
		cw, err := simulation.NewConfigWatcher(configFile, schemaFile)
		if err != nil {
			return err
		}
		defer func() { _ = cw.Close() }()
		reloads = cw.Updates
		go func() {
			for err := range cw.Errors {
				logger.Warnf("config reload rejected: %v", err)
			}
		}()
		logger.Infof("Watching %s for weight changes", configFile)
	}

	game, err := viewer.NewGame(ctx, cfg, system, reloads)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids: Flocking Simulation")
	return ebiten.RunGame(game)
}
