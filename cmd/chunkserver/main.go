package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chunkserver/internal/config"
	"chunkserver/internal/persistence"
	"chunkserver/internal/preview"
	"chunkserver/internal/registry"
	"chunkserver/internal/terrain"
	"chunkserver/internal/world"
)

func main() {
	var cfgPath string
	var previewDir string
	flag.StringVar(&cfgPath, "config", "", "path to chunk server configuration file")
	flag.StringVar(&previewDir, "preview", "", "if set, write a debug PNG preview of each preloaded chunk to this directory")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	reg, err := loadRegistry(cfg.World.RegistryPath)
	if err != nil {
		log.Fatalf("load block registry: %v", err)
	}

	store, err := openStore(cfg.Persistence)
	if err != nil {
		log.Fatalf("open persistence store: %v", err)
	}
	defer store.Close()

	metrics := world.WorldMetrics{
		ChunkSize:     cfg.World.ChunkSize,
		MaxHeight:     cfg.World.MaxHeight,
		MaxLightLevel: cfg.World.MaxLightLevel,
		Dimension:     cfg.World.Dimension,
		RenderRadius:  int16(cfg.World.RenderRadius),
	}

	generator := terrain.NewNoiseGenerator(cfg.Terrain, reg)
	decorator := terrain.NewForestDecorator(cfg.Terrain.Seed)
	chunker := world.NewChunker(metrics, reg, generator, decorator)

	restoreFromStore(chunker, store)

	log.Printf("preloading world, width=%d", cfg.World.PreloadWidth)
	chunker.Preload(int16(cfg.World.PreloadWidth))
	log.Printf("preload complete, %d chunks resident", chunker.Len())

	if previewDir != "" {
		writePreviews(chunker, reg, previewDir)
	}

	ctx, cancel := signalContext()
	defer cancel()

	runSaveLoop(ctx, chunker, store, cfg.Persistence.SaveInterval)
}

func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.Load(path)
}

func openStore(cfg config.PersistenceConfig) (persistence.ChunkSnapshotStore, error) {
	if cfg.DataDir == "" {
		return persistence.NewMemoryStore(), nil
	}
	return persistence.NewDiskStore(cfg.DataDir), nil
}

// restoreFromStore installs every previously-saved snapshot before the
// first Preload, so a restarted server resumes terrain it already built
// instead of regenerating it.
func restoreFromStore(chunker *world.Chunker, store persistence.ChunkSnapshotStore) {
	count := 0
	err := store.ForEach(func(snap persistence.Snapshot) bool {
		persistence.Restore(chunker, snap)
		count++
		return true
	})
	if err != nil {
		log.Printf("restore from store: %v", err)
		return
	}
	if count > 0 {
		log.Printf("restored %d chunks from persistence", count)
	}
}

// writePreviews renders every chunk that Preload generated. Right after
// Preload each generated chunk is flagged needsSaving (nothing has been
// persisted yet), so DirtySnapshots doubles as "every generated chunk"
// here; chunks restored from the store are not flagged and are skipped.
func writePreviews(chunker *world.Chunker, reg *registry.Registry, dir string) {
	written := 0
	for _, chunk := range chunker.DirtySnapshots() {
		if err := preview.SaveChunkPreview(chunk, reg, dir); err != nil {
			log.Printf("preview %v: %v", chunk.Coords, err)
			continue
		}
		written++
	}
	log.Printf("wrote %d chunk previews to %s", written, dir)
}

// runSaveLoop periodically persists every dirty chunk until ctx is
// cancelled, then does one final save pass before returning.
func runSaveLoop(ctx context.Context, chunker *world.Chunker, store persistence.ChunkSnapshotStore, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			saveDirtyChunks(chunker, store)
		case <-ctx.Done():
			log.Printf("shutting down, flushing dirty chunks")
			saveDirtyChunks(chunker, store)
			return
		}
	}
}

func saveDirtyChunks(chunker *world.Chunker, store persistence.ChunkSnapshotStore) {
	dirty := chunker.DirtySnapshots()
	if len(dirty) == 0 {
		return
	}
	saved := 0
	for _, chunk := range dirty {
		snap := persistence.SnapshotOf(chunk, chunk.Coords)
		if err := store.Save(snap); err != nil {
			log.Printf("save chunk %v: %v", chunk.Coords, err)
			continue
		}
		chunk.ClearNeedsSaving()
		saved++
	}
	log.Printf("persisted %d/%d dirty chunks", saved, len(dirty))
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}

		// Ensure the process terminates if shutdown stalls.
		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
