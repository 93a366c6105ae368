package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"evogrid/internal/model"
	"evogrid/internal/platform"
	"evogrid/internal/stats"
	"evogrid/internal/storage"
	"evogrid/internal/worlds"

	_ "evogrid/internal/worlds/conway"
	_ "evogrid/internal/worlds/evoconway"
	_ "evogrid/internal/worlds/evosubstance"
	_ "evogrid/internal/worlds/substance"
)

const defaultDBPath = "evogrid.db"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "worlds":
		return runWorlds(ctx, args[1:])
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "stats":
		return runStats(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "render":
		return runRender(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runWorlds(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("worlds", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, name := range worlds.Names() {
		fmt.Println(name)
	}
	return nil
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	world := fs.String("world", "conway", "world name (see `evogridctl worlds`)")
	width := fs.Int("width", 64, "grid width")
	height := fs.Int("height", 48, "grid height")
	seed := fs.Uint64("seed", 1, "rng seed")
	generations := fs.Int("gens", 100, "generations to simulate")
	sampleEvery := fs.Int("sample-every", 10, "census sampling interval (0 disables)")
	snapshotEvery := fs.Int("snapshot-every", 0, "snapshot interval (0 disables)")
	verbose := fs.Bool("v", false, "log per-sample progress")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	params := map[string]string{}
	fs.Func("param", "world parameter as key=value (repeatable)", func(value string) error {
		key, val, ok := strings.Cut(value, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid parameter %q, expected key=value", value)
		}
		params[key] = val
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	lab, err := platform.NewLab(platform.Config{Store: store, Logger: logger})
	if err != nil {
		return err
	}

	result, err := lab.Run(ctx, platform.RunConfig{
		World:         *world,
		Width:         *width,
		Height:        *height,
		Seed:          *seed,
		Generations:   *generations,
		SampleEvery:   *sampleEvery,
		SnapshotEvery: *snapshotEvery,
		Params:        params,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished: %d generations in %s, %s live cells\n",
		result.Run.ID,
		result.Run.Generations,
		result.Run.FinishedAt.Sub(result.Run.StartedAt).Round(time.Millisecond),
		humanize.Comma(int64(result.Final.LiveCells)))
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %-12s %dx%d seed=%d gens=%d stop=%s started %s\n",
			run.ID, run.World, run.Width, run.Height, run.Seed,
			run.Generations, run.StopReason, humanize.Time(run.StartedAt))
	}
	return nil
}

func runStats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("stats requires -run-id")
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	run, samples, err := loadRun(ctx, store, *runID)
	if err != nil {
		return err
	}
	return stats.WriteRunReport(os.Stdout, stats.BuildRunReport(run, samples))
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	outDir := fs.String("out", "exports", "export base directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export requires -run-id")
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	run, samples, err := loadRun(ctx, store, *runID)
	if err != nil {
		return err
	}

	runDir, err := stats.WriteRunArtifacts(*outDir, stats.RunArtifacts{
		Run:     run,
		Samples: samples,
		Report:  stats.BuildRunReport(run, samples),
	})
	if err != nil {
		return err
	}
	if err := stats.AppendRunIndex(*outDir, stats.RunIndexEntry{
		RunID:        run.ID,
		World:        run.World,
		Width:        run.Width,
		Height:       run.Height,
		Seed:         run.Seed,
		Generations:  run.Generations,
		StopReason:   run.StopReason,
		CreatedAtUTC: run.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return err
	}

	fmt.Printf("exported run %s to %s\n", run.ID, runDir)
	return nil
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	generation := fs.Int64("generation", -1, "snapshot generation (-1 for the latest)")
	outPath := fs.String("out", "snapshot.png", "output PNG path")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("render requires -run-id")
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	target := uint64(*generation)
	if *generation < 0 {
		generations, err := store.ListSnapshotGenerations(ctx, *runID)
		if err != nil {
			return err
		}
		if len(generations) == 0 {
			return fmt.Errorf("no snapshots stored for run %s", *runID)
		}
		target = generations[len(generations)-1]
	}

	snapshot, ok, err := store.GetSnapshot(ctx, *runID, target)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("snapshot not found: run %s generation %d", *runID, target)
	}

	img, err := snapshotImage(snapshot)
	if err != nil {
		return err
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("rendered run %s generation %d to %s\n", *runID, target, *outPath)
	return nil
}

// snapshotImage reconstructs the stored row-major RGBA buffer as an image.
func snapshotImage(snapshot model.Snapshot) (*image.NRGBA, error) {
	if len(snapshot.Pixels) != snapshot.Width*snapshot.Height*4 {
		return nil, fmt.Errorf("snapshot pixel buffer is %d bytes, expected %d",
			len(snapshot.Pixels), snapshot.Width*snapshot.Height*4)
	}
	img := image.NewNRGBA(image.Rect(0, 0, snapshot.Width, snapshot.Height))
	for y := 0; y < snapshot.Height; y++ {
		for x := 0; x < snapshot.Width; x++ {
			i := (y*snapshot.Width + x) * 4
			img.SetNRGBA(x, y, color.NRGBA{
				R: snapshot.Pixels[i],
				G: snapshot.Pixels[i+1],
				B: snapshot.Pixels[i+2],
				A: snapshot.Pixels[i+3],
			})
		}
	}
	return img, nil
}

func openStore(ctx context.Context, kind, dbPath string) (storage.Store, error) {
	store, err := storage.NewStore(kind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}
	return store, nil
}

func loadRun(ctx context.Context, store storage.Store, runID string) (model.Run, []model.GenerationStats, error) {
	run, ok, err := store.GetRun(ctx, runID)
	if err != nil {
		return model.Run{}, nil, err
	}
	if !ok {
		return model.Run{}, nil, fmt.Errorf("run not found: %s", runID)
	}
	samples, _, err := store.GetGenerationStats(ctx, runID)
	if err != nil {
		return model.Run{}, nil, err
	}
	return run, samples, nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: evogridctl <worlds|init|run|runs|stats|export|render> [flags]", msg)
}
