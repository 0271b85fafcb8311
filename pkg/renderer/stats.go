package renderer

import (
	"time"

	"github.com/montanaflynn/stats"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels    int           // Pixels in the image
	TotalSamples   int           // Camera rays traced
	Tiles          int           // Tiles rendered
	Workers        int           // Workers used
	Duration       time.Duration // Wall time of the whole render
	TileMedian     time.Duration // Median time per tile
	TileP95        time.Duration // 95th percentile time per tile
	PixelErrors    int           // Pixels replaced by the error colour
	AverageSamples float64       // Samples per pixel actually taken
}

// tileTimings collects per-tile durations and summarizes them
type tileTimings []float64

func (tt *tileTimings) add(d time.Duration) {
	*tt = append(*tt, float64(d))
}

// summarize returns the median and 95th percentile. Both are zero when no
// tile was timed.
func (tt tileTimings) summarize() (time.Duration, time.Duration) {
	if len(tt) == 0 {
		return 0, 0
	}
	data := stats.Float64Data(tt)
	median, err := data.Median()
	if err != nil {
		return 0, 0
	}
	p95, err := data.Percentile(95)
	if err != nil {
		p95 = median
	}
	return time.Duration(median), time.Duration(p95)
}
