package query

import (
	"errors"
	"sync"

	"github.com/go-arbor/arbor"
)

// ErrInvalidFilter is returned if a pipeline filter stage was given a nil
// predicate or action.
var ErrInvalidFilter = errors.New("query: filter stage is invalid")

// ErrEmptyStart is returned if a Walker is asked to walk from a null
// handle.
var ErrEmptyStart = errors.New("query: cannot walk from a null handle")

// ErrNoMoreFiltersAccepted is returned by Promise if a client calls a filter
// method after already calling Promise on the same Walker.
var ErrNoMoreFiltersAccepted = errors.New("query: walker is already promising; use a new Walker")

// Walker drives a small pipelined search DSL over an arbor.Tree: a chain of
// search/filter operations, each a stage of a concurrent pipeline, ending
// in a call to Promise to collect the matching handles. Grounded on
// tree.Walker/tree.pipeline from this module's own earlier history of
// search DSLs, adapted to operate read-only over arbor.Handle[T] instead of
// a node type owning its own children.
//
//	w := query.NewWalker(tree.Root())
//	future := w.DescendentsWith(query.NodeIsLeaf[int]()).Promise()
//	leaves, err := future()
type Walker[T comparable] struct {
	mu         *sync.Mutex
	initial    arbor.Handle[T]
	pipe       *pipeline[T]
	promising  bool
	invalidErr error // set instead of touching pipe.errors when a filter call is itself malformed
}

// NewWalker creates a Walker starting at initial. If initial is null,
// NewWalker returns nil: the nil Walker is itself safe to call filter
// methods and Promise on, always yielding ErrEmptyStart.
func NewWalker[T comparable](initial arbor.Handle[T]) *Walker[T] {
	if initial.IsNull() {
		return nil
	}
	return &Walker[T]{mu: new(sync.Mutex), initial: initial, pipe: newPipeline[T]()}
}

func (w *Walker[T]) clone(pipe *pipeline[T]) *Walker[T] {
	return &Walker[T]{mu: w.mu, initial: w.initial, pipe: pipe, promising: w.promising, invalidErr: w.invalidErr}
}

func (w *Walker[T]) appendFilter(task workerTask[T], filterdata interface{}) (*Walker[T], error) {
	if w.promising {
		w.invalidErr = ErrNoMoreFiltersAccepted
		return nil, ErrNoMoreFiltersAccepted
	}
	if w.invalidErr != nil {
		// a previous filter call in this chain was already malformed; keep
		// the chain inert rather than starting a pipeline nothing will ever
		// drain.
		return w, nil
	}
	f := newFilter(task, filterdata)
	starting := w.pipe.empty()
	appendFilter(w.pipe, f)
	if starting {
		w.pipe.pushSync(w.initial, 0)
		w.pipe.startProcessing()
	}
	return w.clone(w.pipe), nil
}

// Promise is a future synchronization point: clients call the returned
// function any time afterward to block until every concurrent stage has
// finished and receive the resulting handles (deduplicated, order
// unspecified) and the last error reported by any stage, if any.
func (w *Walker[T]) Promise() func() ([]arbor.Handle[T], error) {
	if w == nil {
		return func() ([]arbor.Handle[T], error) { return nil, ErrEmptyStart }
	}
	if w.invalidErr != nil {
		err := w.invalidErr
		return func() ([]arbor.Handle[T], error) { return nil, err }
	}
	if w.pipe.empty() {
		return func() ([]arbor.Handle[T], error) { return nil, nil }
	}
	w.promising = true
	results, errch, counter := w.pipe.results, w.pipe.errors, &w.pipe.queuecount
	signal := make(chan struct{})
	var selection []arbor.Handle[T]
	var lasterr error
	go func() {
		defer close(signal)
		selection, lasterr = waitForCompletion(results, errch, counter)
	}()
	return func() ([]arbor.Handle[T], error) {
		<-signal
		return selection, lasterr
	}
}

// Predicate tests a candidate handle, returning it as a match or a null
// handle (no match) together with an error that, if non-nil, aborts the
// search.
type Predicate[T comparable] func(candidate arbor.Handle[T]) (match arbor.Handle[T], err error)

// Whatever matches any handle — useful to visit every node in a given
// direction without filtering.
func Whatever[T comparable]() Predicate[T] {
	return func(candidate arbor.Handle[T]) (arbor.Handle[T], error) { return candidate, nil }
}

// NodeIsLeaf matches handles with no children.
func NodeIsLeaf[T comparable]() Predicate[T] {
	return func(candidate arbor.Handle[T]) (arbor.Handle[T], error) {
		if candidate.ChildCount() == 0 {
			return candidate, nil
		}
		return arbor.Handle[T]{}, nil
	}
}

// Action operates on a handle during a TopDown or BottomUp traversal,
// returning the handle to forward to the result set (or a null handle to
// drop it) together with an error that, if non-nil, drops that handle's
// result; TopDown additionally skips the handle's descendants.
type Action[T comparable] func(h arbor.Handle[T]) (arbor.Handle[T], error)

// Parent appends a filter stage yielding each input handle's parent (the
// root contributes nothing).
func (w *Walker[T]) Parent() *Walker[T] {
	if w == nil {
		return nil
	}
	nw, err := w.appendFilter(parentTask[T], nil)
	if err != nil {
		return w
	}
	return nw
}

func parentTask[T comparable](h arbor.Handle[T], data taskdata, emit func(arbor.Handle[T], uint32)) error {
	if p := h.Parent(); !p.IsNull() {
		emit(p, data.serial)
	}
	return nil
}

// AncestorWith appends a filter stage finding the nearest ancestor (of each
// input handle) matching predicate. The search excludes the start handle
// itself.
func (w *Walker[T]) AncestorWith(predicate Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if predicate == nil {
		w.invalidErr = ErrInvalidFilter
		return w
	}
	nw, err := w.appendFilter(ancestorWithTask(predicate), nil)
	if err != nil {
		return w
	}
	return nw
}

func ancestorWithTask[T comparable](predicate Predicate[T]) workerTask[T] {
	return func(h arbor.Handle[T], data taskdata, emit func(arbor.Handle[T], uint32)) error {
		anc := h.Parent()
		for !anc.IsNull() {
			match, err := predicate(anc)
			if err != nil {
				return err
			}
			if !match.IsNull() {
				emit(match, data.serial)
				return nil
			}
			anc = anc.Parent()
		}
		return nil
	}
}

// DescendentsWith appends a filter stage finding every descendant (of each
// input handle, excluding it) matching predicate.
func (w *Walker[T]) DescendentsWith(predicate Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if predicate == nil {
		w.invalidErr = ErrInvalidFilter
		return w
	}
	nw, err := w.appendFilter(descendentsWithTask(predicate), nil)
	if err != nil {
		return w
	}
	return nw
}

func descendentsWithTask[T comparable](predicate Predicate[T]) workerTask[T] {
	var visit func(h arbor.Handle[T], serial uint32, emit func(arbor.Handle[T], uint32)) error
	visit = func(h arbor.Handle[T], serial uint32, emit func(arbor.Handle[T], uint32)) error {
		for _, child := range h.Children() {
			match, err := predicate(child)
			if err != nil {
				return err
			}
			if !match.IsNull() {
				emit(match, serial)
			}
			if err := visit(child, serial, emit); err != nil {
				return err
			}
		}
		return nil
	}
	return func(h arbor.Handle[T], data taskdata, emit func(arbor.Handle[T], uint32)) error {
		return visit(h, data.serial, emit)
	}
}

// AllDescendents is a convenience wrapper around
// DescendentsWith(Whatever[T]()).
func (w *Walker[T]) AllDescendents() *Walker[T] {
	return w.DescendentsWith(Whatever[T]())
}

// Filter appends a filter stage applying a client predicate directly to
// each input handle (rather than to its ancestors or descendants).
func (w *Walker[T]) Filter(predicate Predicate[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if predicate == nil {
		w.invalidErr = ErrInvalidFilter
		return w
	}
	nw, err := w.appendFilter(clientFilterTask(predicate), nil)
	if err != nil {
		return w
	}
	return nw
}

func clientFilterTask[T comparable](predicate Predicate[T]) workerTask[T] {
	return func(h arbor.Handle[T], data taskdata, emit func(arbor.Handle[T], uint32)) error {
		match, err := predicate(h)
		if err != nil {
			return err
		}
		if !match.IsNull() {
			emit(match, data.serial)
		}
		return nil
	}
}

// TopDown appends a filter stage visiting each input handle and all of its
// descendants, parents always processed before their children. If action
// returns an error for a handle, that branch is not descended further.
func (w *Walker[T]) TopDown(action Action[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if action == nil {
		w.invalidErr = ErrInvalidFilter
		return w
	}
	nw, err := w.appendFilter(topDownTask(action), nil)
	if err != nil {
		return w
	}
	return nw
}

func topDownTask[T comparable](action Action[T]) workerTask[T] {
	var visit func(h arbor.Handle[T], serial uint32, emit func(arbor.Handle[T], uint32)) error
	visit = func(h arbor.Handle[T], serial uint32, emit func(arbor.Handle[T], uint32)) error {
		result, err := action(h)
		if err != nil {
			return nil // prune this branch, not an overall failure
		}
		if !result.IsNull() {
			emit(result, serial)
		}
		for _, child := range h.Children() {
			if err := visit(child, serial, emit); err != nil {
				return err
			}
		}
		return nil
	}
	return func(h arbor.Handle[T], data taskdata, emit func(arbor.Handle[T], uint32)) error {
		return visit(h, data.serial, emit)
	}
}

// BottomUp appends a filter stage visiting each input handle and all of its
// descendants, children always processed before their parent. If action
// returns an error for a handle, its result is dropped but its parent is
// still processed.
func (w *Walker[T]) BottomUp(action Action[T]) *Walker[T] {
	if w == nil {
		return nil
	}
	if action == nil {
		w.invalidErr = ErrInvalidFilter
		return w
	}
	nw, err := w.appendFilter(bottomUpTask(action), nil)
	if err != nil {
		return w
	}
	return nw
}

func bottomUpTask[T comparable](action Action[T]) workerTask[T] {
	var visit func(h arbor.Handle[T], serial uint32, emit func(arbor.Handle[T], uint32)) error
	visit = func(h arbor.Handle[T], serial uint32, emit func(arbor.Handle[T], uint32)) error {
		for _, child := range h.Children() {
			if err := visit(child, serial, emit); err != nil {
				return err
			}
		}
		result, err := action(h)
		if err == nil && !result.IsNull() {
			emit(result, serial)
		}
		return nil
	}
	return func(h arbor.Handle[T], data taskdata, emit func(arbor.Handle[T], uint32)) error {
		return visit(h, data.serial, emit)
	}
}
