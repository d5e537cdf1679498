/*
Package query layers a concurrent, pipelined search DSL on top of an
arbor.Tree, in the spirit of the tree package's own goroutine-pipelined
Walker. It is read-only: no task in this package mutates the tree it
searches, so it never needs to coordinate with arbor's own lack of internal
locking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package query

import (
	"runtime"
	"sync"

	"github.com/go-arbor/arbor"
)

const (
	minWorkerCount = 3
	maxWorkerCount = 10
)

// handlePackage is the unit of work passed between pipeline stages.
type handlePackage[T comparable] struct {
	handle arbor.Handle[T]
	serial uint32
}

// taskdata bundles the per-call filter data together with the data that
// travels alongside one particular handle.
type taskdata struct {
	filterdata interface{}
	serial     uint32
}

// workerTask performs one pipeline stage's work on a single handle,
// forwarding zero or more results to the next stage via emit. Tasks that
// need to visit more than one node (descendantsWith, topDown, bottomUp)
// recurse synchronously within the call, calling emit once per match; the
// recursion itself does not re-enter the pipeline's own queuecounter
// bookkeeping.
type workerTask[T comparable] func(h arbor.Handle[T], data taskdata, emit func(arbor.Handle[T], uint32)) error

type filterenv[T comparable] struct {
	input        <-chan handlePackage[T]
	errors       chan<- error
	queuecounter *sync.WaitGroup
}

// filter is one stage of a pipeline: a pool of worker goroutines applying
// the same task to every handle package it receives.
type filter[T comparable] struct {
	results    chan handlePackage[T]
	task       workerTask[T]
	filterdata interface{}
	env        *filterenv[T]
}

func newFilter[T comparable](task workerTask[T], filterdata interface{}) *filter[T] {
	return &filter[T]{task: task, filterdata: filterdata}
}

func (f *filter[T]) start(env *filterenv[T]) chan handlePackage[T] {
	f.env = env
	f.results = make(chan handlePackage[T], 3)

	n := runtime.NumCPU()
	if n > maxWorkerCount {
		n = maxWorkerCount
	} else if n < minWorkerCount {
		n = minWorkerCount
	}

	var workers sync.WaitGroup
	workers.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer workers.Done()
			f.run()
		}()
	}
	go func() {
		workers.Wait()
		close(f.results)
	}()
	return f.results
}

func (f *filter[T]) run() {
	emit := func(h arbor.Handle[T], serial uint32) { f.pushResult(h, serial) }
	for pkg := range f.env.input {
		data := taskdata{filterdata: f.filterdata, serial: pkg.serial}
		if err := f.task(pkg.handle, data, emit); err != nil {
			f.env.errors <- err
		}
		f.env.queuecounter.Done()
	}
}

func (f *filter[T]) pushResult(h arbor.Handle[T], serial uint32) {
	f.env.queuecounter.Add(1)
	f.results <- handlePackage[T]{h, serial}
}

// pipeline is the chain of filter stages built up by a Walker.
type pipeline[T comparable] struct {
	sync.RWMutex
	queuecount sync.WaitGroup
	errors     chan error
	stages     int
	input      chan handlePackage[T]
	results    chan handlePackage[T]
	running    bool
}

func newPipeline[T comparable]() *pipeline[T] {
	p := &pipeline[T]{errors: make(chan error, 64), input: make(chan handlePackage[T], 10)}
	p.results = p.input
	return p
}

func (p *pipeline[T]) empty() bool {
	p.RLock()
	defer p.RUnlock()
	return p.stages == 0
}

// appendFilter wires f's input to the pipeline's current tail and makes f's
// output the new tail.
func appendFilter[T comparable](p *pipeline[T], f *filter[T]) {
	p.Lock()
	defer p.Unlock()
	env := &filterenv[T]{input: p.results, errors: p.errors, queuecounter: &p.queuecount}
	p.results = f.start(env)
	p.stages++
}

// startProcessing arranges for the pipeline's input (and, transitively, the
// output of every stage) to be closed once the queuecounter drains to zero,
// which cascades a close down the whole chain and unblocks every stage's
// range loop and the final Promise drain.
func (p *pipeline[T]) startProcessing() {
	p.Lock()
	defer p.Unlock()
	if p.running {
		return
	}
	p.running = true
	go func() {
		p.queuecount.Wait()
		close(p.input)
		close(p.errors)
	}()
}

func (p *pipeline[T]) pushSync(h arbor.Handle[T], serial uint32) {
	p.queuecount.Add(1)
	p.input <- handlePackage[T]{h, serial}
}

func waitForCompletion[T comparable](results <-chan handlePackage[T], errch <-chan error, counter *sync.WaitGroup) ([]arbor.Handle[T], error) {
	var selection []arbor.Handle[T]
	seen := make(map[arbor.Handle[T]]bool)
	for pkg := range results {
		if !seen[pkg.handle] {
			seen[pkg.handle] = true
			selection = append(selection, pkg.handle)
		}
		counter.Done()
	}
	var lasterr error
	for err := range errch {
		if err != nil {
			lasterr = err
		}
	}
	return selection, lasterr
}
