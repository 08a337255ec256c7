// Command rehoard-inspect is a small diagnostic tool: point it at a root
// directory, give it one or more path keys, and it will load them, run a
// single sync pass, and print what it resolved. Useful for poking at a
// tree of resources from the command line without writing a Go program.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arqlane/rehoard"
	"github.com/arqlane/rehoard/loaders/plaintext"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	root := flag.String("root", ".", "root directory to watch")
	keys := flag.String("keys", "", "comma-separated list of path keys to load")
	debounce := flag.Duration("debounce", 50*time.Millisecond, "reload debounce window")
	flag.Parse()

	if *keys == "" {
		fmt.Fprintln(os.Stderr, "rehoard-inspect: at least one -keys entry is required")
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	store, err := rehoard.New(
		rehoard.WithRoot(*root),
		rehoard.WithDebounce(*debounce),
		rehoard.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	for _, k := range strings.Split(*keys, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		h, err := rehoard.Get[string](ctx, store, rehoard.Path(k), plaintext.Loader{})
		if err != nil {
			logger.Error("load failed", zap.String("key", k), zap.Error(err))
			continue
		}
		fmt.Printf("%s:\n%s\n\n", k, h.View())
	}

	store.Sync(ctx)
	logger.Info("sync complete", zap.String("root", store.Root()))
}
