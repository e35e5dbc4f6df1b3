package ctf

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Result is the outcome of one construction. Exactly one of CTF and Err is set.
type Result struct {
	Index    int
	Name     string
	TimeStep float64
	CTF      *CTFSet
	Err      error
}

// BatchResult collects the results of a run in construction order.
type BatchResult struct {
	Results []Result
}

// HasErrors reports whether any construction failed.
func (b *BatchResult) HasErrors() bool {
	for _, r := range b.Results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Failed returns the failed results in construction order.
func (b *BatchResult) Failed() []Result {
	var failed []Result
	for _, r := range b.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// MaxParallelism is the number of workers used when none is configured.
func MaxParallelism() int {
	maxProcs := runtime.GOMAXPROCS(0)
	numCPU := runtime.NumCPU()
	if maxProcs < numCPU {
		return maxProcs
	}
	return numCPU
}

/*
CalculateTransferFunction derives the CTF set of one construction.

Starting from the base time step, a failure that a longer step can cure
(too many nodes or history terms) is retried at the next multiple of the
base step until cfg.MaxTimeStep is passed.
*/
func CalculateTransferFunction(c *Construction, cfg Config) (*CTFSet, error) {
	base := cfg.TimeStep.Hours()

	var lastErr error
	for step := 1; ; step++ {
		dt := base * float64(step)
		if step > 1 && dt > cfg.MaxTimeStep+1.0e-9 {
			return nil, lastErr
		}

		ss, err := Discretize(c, dt, cfg)
		if err == nil {
			var s *CTFSet
			s, err = Solve(ss, dt, cfg)
			if err == nil {
				if step > 1 {
					log.WithFields(log.Fields{
						"construction": c.Name,
						"time_step":    dt,
						"base":         base,
					}).Info("CTF time step increased")
				}
				log.WithFields(log.Fields{
					"construction": c.Name,
					"nodes":        ss.NumStates(),
					"terms":        s.NumTerms,
					"diffusivity":  meanDiffusivity(c),
				}).Debug("CTF calculated")
				return s, nil
			}
		}

		var ce *ConstructionError
		if !errors.As(err, &ce) || !ce.retry {
			return nil, err
		}
		lastErr = err
	}
}

// thickness-weighted diffusivity of the mass layers, m2/s
func meanDiffusivity(c *Construction) float64 {
	var alpha, weight []float64
	for _, l := range c.Layers {
		if l.IsResistive() {
			continue
		}
		alpha = append(alpha, l.Diffusivity())
		weight = append(weight, l.Thickness)
	}
	if len(alpha) == 0 {
		return math.NaN()
	}
	return stat.Mean(alpha, weight)
}

// worker solves the constructions whose indices arrive on jobs and writes
// each outcome into its own slot of results.
func worker(wg *sync.WaitGroup, cs []*Construction, cfg Config, jobs <-chan int, results []Result) {
	defer wg.Done()

	for i := range jobs {
		c := cs[i]
		r := Result{Index: i, Name: c.Name}
		r.CTF, r.Err = CalculateTransferFunction(c, cfg)
		if r.CTF != nil {
			r.TimeStep = r.CTF.TimeStep
		}
		results[i] = r
	}
}

// Solve all constructions in parallel, in place.
func solveAll(cs []*Construction, cfg Config) *BatchResult {
	results := make([]Result, len(cs))

	n := cfg.Workers
	if n <= 0 {
		n = MaxParallelism()
	}
	if n > len(cs) {
		n = len(cs)
	}

	jobs := make(chan int, len(cs))
	for i := range cs {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go worker(&wg, cs, cfg, jobs, results)
	}
	wg.Wait()

	return &BatchResult{Results: results}
}

/*
Run calculates the CTFs of every construction, writes the report and
returns ErrInitFailed if any construction failed.

Every construction is attempted before the outcome is decided, so the report
and the log list all failures at once. Failures force the detailed report.
*/
func Run(cs []*Construction, cfg Config, rw *ReportWriter) (*BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	batch := solveAll(cs, cfg)

	for i, r := range batch.Results {
		cs[i].CTF = r.CTF
		cs[i].Err = r.Err
		if r.Err != nil {
			log.WithFields(log.Fields{
				"construction": r.Name,
				"index":        i + 1,
			}).Error(r.Err)
		}
	}

	failed := batch.HasErrors()
	if rw != nil {
		if err := rw.Write(cs, failed); err != nil {
			return batch, fmt.Errorf("write constructions report: %w", err)
		}
	}

	if failed {
		return batch, fmt.Errorf("%w: %d of %d constructions failed", ErrInitFailed, len(batch.Failed()), len(cs))
	}
	return batch, nil
}
