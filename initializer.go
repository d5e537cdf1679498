package arbor

// Initializer is a recursive value used to build a tree in bulk: a value
// paired with the initializers of its children, in order. Grounded on
// unsafe_tree<T>::initializer in cpptools/container/tree/unsafe_tree.hpp.
type Initializer[T any] struct {
	Value    T
	Children []Initializer[T]
}
