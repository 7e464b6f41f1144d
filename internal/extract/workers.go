package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dtnitsch/tag-extractor/pkg/source"
)

// job asks a worker to load one source.
type job struct {
	index int
	name  string
}

type loadResult struct {
	index int
	text  *source.Text
	err   error
}

// worker loads sources from jobs until the channel is closed.
func worker(ctx context.Context, id int, logger *slog.Logger, loader *source.Loader, wg *sync.WaitGroup, jobs <-chan job, results chan<- loadResult) {
	defer wg.Done()
	for j := range jobs {
		if err := ctx.Err(); err != nil {
			results <- loadResult{index: j.index, err: err}
			continue
		}

		logger.Debug("Loading source", "worker", id, "source", j.name)
		text, err := loader.Load(ctx, j.name)
		if err != nil {
			logger.Error("Failed to load source", "worker", id, "source", j.name, "error", err)
			results <- loadResult{index: j.index, err: err}
			continue
		}

		logger.Info("Loaded source", "worker", id, "source", j.name, "kind", text.Kind, "lines", len(text.Lines))
		results <- loadResult{index: j.index, text: text}
	}
}

// loadSources reads every named source on a bounded pool of workers and
// returns them in input order. If any source fails, all failures are
// returned together and no texts are.
func loadSources(ctx context.Context, logger *slog.Logger, loader *source.Loader, names []string, workerCount int) ([]*source.Text, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(names) {
		workerCount = len(names)
	}

	var wg sync.WaitGroup
	jobs := make(chan job, len(names))
	results := make(chan loadResult, len(names))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, loader, &wg, jobs, results)
	}

	for i, name := range names {
		jobs <- job{index: i, name: name}
	}
	close(jobs)

	wg.Wait()
	close(results)

	texts := make([]*source.Text, len(names))
	failures := make([]error, len(names))
	failed := false
	for r := range results {
		if r.err != nil {
			failures[r.index] = fmt.Errorf("%s: %w", names[r.index], r.err)
			failed = true
			continue
		}
		texts[r.index] = r.text
	}

	if failed {
		return nil, errors.Join(failures...)
	}
	return texts, nil
}
