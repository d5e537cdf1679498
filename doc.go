/*
Package arbor implements a generic arbitrary-arity tree container.

Each node holds a client-supplied value of type T and has at most one parent
and any number of ordered children. The package is split into three layers:

  - an unsafe core (node and unsafeTree) that owns node storage and performs
    structural mutation with only debug-assertion-level precondition checks;
  - a safe wrapper (Tree) that validates client input, translates handles to
    node pointers, and reports failures as errors; and
  - bidirectional pre-order/post-order DFS iterators, also exposed as
    range-over-func sequences for use with the standard "for range" form.

There are many tree implementations around; this one favors depth over
breadth: arbitrary arity, stable handles, and a small set of structural
mutations (emplace, erase, chop, adopt, move, merge) rather than search
indices or balancing. The companion query subpackage layers a concurrent
search DSL on top, similar in spirit to this module's own history of
goroutine-pipelined tree walking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package arbor

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor'.
func tracer() tracing.Trace {
	return tracing.Select("arbor")
}

// DebugAssertions toggles the unsafe core's precondition checks. Leave it
// false in production: the checks are meant to catch programming errors
// during development, not to guard against untrusted input (the safe Tree
// wrapper is responsible for that). Flip it on in tests that probe the
// unsafe layer directly.
var DebugAssertions = false

// assertThat panics with an *Error if cond is false and DebugAssertions is
// enabled. It is a no-op otherwise, mirroring the teacher's own
// conditionally-compiled CPPTOOLS_DEBUG_ASSERT macros, realized here as a
// runtime switch since Go has no preprocessor.
func assertThat(cond bool, kind ErrorKind, op, msg string, args ...interface{}) {
	if cond || !DebugAssertions {
		return
	}
	err := &Error{Kind: kind, Op: op, Context: fmt.Sprintf(msg, args...)}
	tracer().Errorf("%s", err.Error())
	panic(err)
}
