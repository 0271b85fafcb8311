package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// WorkerPool renders tiles in parallel. Each worker owns a sampler seeded
// with seed+workerID, so no random state is shared between goroutines.
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
	seed       int64
}

// NewWorkerPool creates a worker pool. numWorkers <= 0 uses GOMAXPROCS.
func NewWorkerPool(renderer *TileRenderer, numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{renderer: renderer, numWorkers: numWorkers, seed: seed}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile exactly once and sends each result on results. It
// blocks until all workers have finished and does not close results.
func (wp *WorkerPool) Run(tiles []Tile, results chan<- TileResult) error {
	tasks := make(chan Tile, len(tiles))
	for _, tile := range tiles {
		tasks <- tile
	}
	close(tasks) // No more tasks

	var group errgroup.Group
	for i := 0; i < wp.numWorkers; i++ {
		workerID := i
		group.Go(func() error {
			sampler := core.NewSeededSampler(wp.seed + int64(workerID))
			for tile := range tasks {
				result := wp.renderer.RenderTile(tile, sampler)
				result.WorkerID = workerID
				results <- result
			}
			return nil
		})
	}
	return group.Wait()
}
