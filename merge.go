package arbor

// MergePolicy folds a source value into a destination value in place, as
// used by Tree.MergeWithParent. It is the Go rendition of the stateless
// two-argument functor concept from cpptools/utility/merge_strategy.hpp:
// any func(dst, src *T) satisfying this signature is accepted, not just the
// three canonical policies below.
type MergePolicy[T any] func(dst, src *T)

// KeepOriginal discards src and leaves dst untouched. Grounded on
// merge::keep.
func KeepOriginal[T any](dst, src *T) {}

// CopyReplace overwrites dst with a copy of src's value. Grounded on
// merge::copy_replace.
func CopyReplace[T any](dst, src *T) {
	*dst = *src
}

// MoveReplace overwrites dst with src's value and resets src to its zero
// value, the closest Go equivalent of move-assignment. Grounded on
// merge::move_replace.
func MoveReplace[T any](dst, src *T) {
	*dst = *src
	var zero T
	*src = zero
}
