package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// searchReporter turns genetic search progress into log lines and spinner
// updates. It logs the first rating, every improvement and a heartbeat
// every ten seconds while the rating stays put.
//
// The reporter keeps state between calls and is not safe for concurrent use.
type searchReporter struct {
	logger      *log.Logger
	spinner     *Spinner
	generations int
	heartbeat   time.Duration

	seen           bool
	lastBest       float64
	start, lastLog time.Time
}

func newSearchReporter(logger *log.Logger, spinner *Spinner, generations int) *searchReporter {
	now := time.Now()
	return &searchReporter{
		logger:      logger,
		spinner:     spinner,
		generations: generations,
		heartbeat:   10 * time.Second,
		start:       now,
		lastLog:     now,
	}
}

// onGeneration has the signature of pipeline.Options.Progress.
func (r *searchReporter) onGeneration(generation int, best float64) {
	if r.spinner != nil {
		r.spinner.SetMessage(fmt.Sprintf("Generation %d/%d · best %.4f", generation+1, r.generations, best))
	}

	switch {
	case !r.seen:
		r.logger.Debug("initial rating", "generation", generation, "best", best)
		r.seen = true
		r.lastLog = time.Now()
	case best < r.lastBest:
		r.logger.Info("improved", "generation", generation, "best", best, "gain", r.lastBest-best)
		r.lastLog = time.Now()
	default:
		if time.Since(r.lastLog) >= r.heartbeat {
			r.logger.Info("searching",
				"generation", fmt.Sprintf("%d/%d", generation+1, r.generations),
				"elapsed", time.Since(r.start).Truncate(time.Second),
				"best", best)
			r.lastLog = time.Now()
		}
	}
	r.lastBest = best
}

// finish warns when the rating was still improving during the last tenth
// of the generations, which suggests the search stopped too early.
func (r *searchReporter) finish(history []float64) {
	if len(history) < 10 {
		return
	}
	last := 0
	for i := 1; i < len(history); i++ {
		if history[i] < history[i-1] {
			last = i
		}
	}
	if last >= len(history)*9/10 {
		r.logger.Warn("rating still improving at the end of the search; try more generations (genetic.generations)",
			"last_improvement", last)
	}
}
