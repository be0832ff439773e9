// Package xbatch installs hooks into many independent functions concurrently.
//
// Decode, Relocate, and Install are pure functions of their inputs (fn and
// tramp are disjoint buffers per call), so a batch of unrelated hook
// installations is trivially safe to run in parallel across goroutines.
package xbatch

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/x86hook/x86hook/pkg/xhook"
)

// Spec describes one function to hook.
type Spec struct {
	Name      string
	Fn        []byte
	FnAddr    uint32
	TrampAddr uint32
	Arg       uint32
	Callback  uint32
}

// Outcome is the result of attempting to install one Spec's hook.
type Outcome struct {
	Spec          Spec
	Tramp         []byte
	BytesReplaced int
	TrampUsed     int
	Err           error
}

// Results collects Outcomes from concurrent workers.
type Results struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// NewResults creates an empty result collector.
func NewResults() *Results {
	return &Results{}
}

// Add records one outcome.
func (r *Results) Add(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// All returns a copy of all recorded outcomes, in no particular order.
func (r *Results) All() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// Installer runs Spec installations across a fixed pool of workers.
type Installer struct {
	NumWorkers int
	Results    *Results
	installed  atomic.Int64
	failed     atomic.Int64
	completed  atomic.Int64
}

// NewInstaller creates a pool with the given number of workers. A
// non-positive numWorkers defaults to runtime.NumCPU().
func NewInstaller(numWorkers int) *Installer {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Installer{
		NumWorkers: numWorkers,
		Results:    NewResults(),
	}
}

// Stats returns running installed/failed counts.
func (in *Installer) Stats() (installed, failed int64) {
	return in.installed.Load(), in.failed.Load()
}

// RunAll installs every spec's hook, distributing work across NumWorkers
// goroutines, and returns once all specs have been processed. Each Spec's
// fn and trampoline buffer must be disjoint from every other Spec's.
func (in *Installer) RunAll(specs []Spec, verbose bool) {
	total := int64(len(specs))

	ch := make(chan Spec, len(specs))
	for _, s := range specs {
		ch <- s
	}
	close(ch)

	done := make(chan struct{})
	start := time.Now()
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				comp := in.completed.Load()
				elapsed := time.Since(start).Round(time.Second)
				pct := float64(comp) / float64(total) * 100
				fmt.Printf("  [%s] %d/%d hooks (%.1f%%) | %d ok | %d failed\n",
					elapsed, comp, total, pct, in.installed.Load(), in.failed.Load())
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < in.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range ch {
				in.installOne(spec, verbose)
				in.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)

	elapsed := time.Since(start).Round(time.Second)
	fmt.Printf("  [%s] %d/%d hooks (100.0%%) | %d ok | %d failed | DONE\n",
		elapsed, total, total, in.installed.Load(), in.failed.Load())
}

func (in *Installer) installOne(spec Spec, verbose bool) {
	tramp := make([]byte, xhook.MinTrampolineSize)
	bytesReplaced, trampUsed, err := xhook.Install(spec.Fn, tramp, spec.FnAddr, spec.TrampAddr, spec.Arg, spec.Callback)

	outcome := Outcome{Spec: spec, Tramp: tramp, BytesReplaced: bytesReplaced, TrampUsed: trampUsed, Err: err}
	in.Results.Add(outcome)

	if err != nil {
		in.failed.Add(1)
		if verbose {
			fmt.Printf("  FAILED: %s: %v\n", spec.Name, err)
		}
		return
	}
	in.installed.Add(1)
	if verbose {
		fmt.Printf("  OK: %s (%d bytes replaced, %d trampoline bytes)\n", spec.Name, bytesReplaced, trampUsed)
	}
}
