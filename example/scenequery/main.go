package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/akmonengine/overlap/scene"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagVerbose  = "verbose"
	flagMaxT     = "max-t"
	flagWorkers  = "workers"
	flagCellSize = "cell-size"
	flagAll      = "all"
)

func main() {
	var logger *log.Logger

	app := &cli.App{
		Name:      "scenequery",
		Usage:     "evaluate the overlap queries of a TOML scene",
		ArgsUsage: "SCENE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "log every query result",
			},
			&cli.Float64Flag{
				Name:  flagMaxT,
				Value: math.MaxFloat32,
				Usage: "ceiling of the rays that do not set `T`",
			},
			&cli.IntFlag{
				Name:  flagWorkers,
				Value: scene.DEFAULT_WORKERS,
				Usage: "number of workers evaluating the queries",
			},
			&cli.Float64Flag{
				Name:  flagCellSize,
				Value: scene.DEFAULT_CELL_SIZE,
				Usage: "broad phase cell size, 0 disables the broad phase",
			},
		},
		Before: func(c *cli.Context) error {
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "scenequery",
			})
			if c.Bool(flagVerbose) {
				logger.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "evaluate the scene once and print the results",
				ArgsUsage: "SCENE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagAll,
						Usage: "print the negative results too",
					},
				},
				Action: func(c *cli.Context) error {
					return check(c, logger)
				},
			},
			{
				Name:      "watch",
				Usage:     "evaluate the scene each time it is saved and log the overlap changes",
				ArgsUsage: "SCENE",
				Action: func(c *cli.Context) error {
					return watch(c, logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scenePath(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New("expected exactly one scene file")
	}
	return c.Args().First(), nil
}

func options(c *cli.Context) scene.Options {
	return scene.Options{
		Workers:  c.Int(flagWorkers),
		CellSize: float32(c.Float64(flagCellSize)),
		MaxT:     float32(c.Float64(flagMaxT)),
	}
}

func check(c *cli.Context, logger *log.Logger) error {
	path, err := scenePath(c)
	if err != nil {
		return err
	}

	s, err := scene.Load(path)
	if err != nil {
		return err
	}

	report := s.Evaluate(logger, options(c))
	if !c.Bool(flagAll) {
		report = report.Hits()
	}
	for _, line := range report.Lines() {
		fmt.Fprintln(c.App.Writer, line)
	}
	return nil
}

func watch(c *cli.Context, logger *log.Logger) error {
	path, err := scenePath(c)
	if err != nil {
		return err
	}

	events := scene.NewEvents()
	events.Subscribe(scene.OVERLAP_ENTER, func(event scene.Event) {
		e := event.(scene.OverlapEnterEvent)
		logger.Info("overlap", "event", event.Type(), "a", e.A, "b", e.B)
	})
	events.Subscribe(scene.OVERLAP_EXIT, func(event scene.Event) {
		e := event.(scene.OverlapExitEvent)
		logger.Info("overlap", "event", event.Type(), "a", e.A, "b", e.B)
	})

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	evaluator := scene.NewEvaluator(logger, options(c))
	return scene.Watch(ctx, path, logger, func(s *scene.Scene) {
		events.Record(evaluator.Evaluate(s))
	})
}
