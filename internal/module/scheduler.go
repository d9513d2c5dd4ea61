package module

import (
	"sort"
	"sync"
)

// CompileFunc compiles a single source file and reports whatever a
// driver needs back out of it (a built ModuleInterface, a parsed AST, a
// plain error) — the Scheduler is agnostic to what compiling a file
// actually produces.
type CompileFunc func(path string) error

// WaveResult pairs a file's path with the error CompileFunc returned for
// it, if any.
type WaveResult struct {
	Path string
	Err  error
}

// Scheduler drives a DependencyTree's processing stages, running every
// file within a wave concurrently before moving to the next wave — files
// in the same wave share no dependency edge between them (spec.md §4.6),
// so nothing in a wave can observe another wave member's output.
type Scheduler struct {
	tree *DependencyTree

	// MaxConcurrent bounds how many files within one wave run at once.
	// Zero or negative means unbounded (one goroutine per file in the
	// wave).
	MaxConcurrent int
}

// NewScheduler builds a Scheduler over tree, whose GenerateProcessingStages
// has already been (or will be) called to produce the waves to run.
func NewScheduler(tree *DependencyTree) *Scheduler {
	return &Scheduler{tree: tree}
}

// Run computes the dependency tree's processing waves and, for each wave
// in order, invokes compile on every file in that wave concurrently,
// waiting for the whole wave to finish before starting the next one.
// Results are returned wave-by-wave, each inner slice sorted by path for
// deterministic output; a compile error on one file does not stop its
// wave-mates, since they share no dependency on it.
func (s *Scheduler) Run(compile CompileFunc) ([][]WaveResult, error) {
	stages, err := s.tree.GenerateProcessingStages()
	if err != nil {
		return nil, err
	}

	out := make([][]WaveResult, len(stages))
	for i, wave := range stages {
		out[i] = s.CompileWave(wave, compile)
	}
	return out, nil
}

// CompileWave runs compile over every path in wave concurrently, bounded
// by MaxConcurrent, and returns one WaveResult per path sorted by path.
// Plain goroutines and a sync.WaitGroup, not golang.org/x/sync/errgroup
// (see DESIGN.md): a wave's members never need to cancel one another —
// a failing file just reports its own error.
func (s *Scheduler) CompileWave(wave []string, compile CompileFunc) []WaveResult {
	limit := s.MaxConcurrent
	if limit <= 0 {
		limit = len(wave)
	}
	if limit <= 0 {
		return nil
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		sem     = make(chan struct{}, limit)
		results = make([]WaveResult, 0, len(wave))
	)

	for _, path := range wave {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			err := compile(p)

			mu.Lock()
			results = append(results, WaveResult{Path: p, Err: err})
			mu.Unlock()
		}(path)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}
