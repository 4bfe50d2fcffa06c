// Command capsulequery evaluates capsule query scenes described in YAML files and
// logs every answer as structured JSON on stderr.
//
//	capsulequery [-level info] [-parallel N] [-epsilon E] scene.yaml...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/akmonengine/capsule/actor"
	"github.com/akmonengine/capsule/internal/log"
	"github.com/akmonengine/capsule/internal/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	level := flag.String("level", "info", "log level: debug, info, warn, error")
	parallel := flag.Int("parallel", runtime.NumCPU(), "number of scene files evaluated at once")
	epsilon := flag.Float64("epsilon", actor.DefaultEpsilon, "length under which a vector has no direction")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: capsulequery [flags] scene.yaml...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger, err := log.New(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	// set once, before any query runs
	actor.Epsilon = *epsilon

	if err := run(context.Background(), logger, flag.Args(), *parallel); err != nil {
		logger.Error("scene evaluation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, paths []string, parallel int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, parallel))

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s, err := scene.LoadFile(path)
			if err != nil {
				return err
			}

			report, err := scene.Run(s, logger.With(zap.String("file", path)))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			logger.Debug("scene done", zap.String("file", path), zap.Int("capsules", len(report.Capsules)))
			return nil
		})
	}

	return g.Wait()
}
