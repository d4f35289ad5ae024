package uid

import "sync"

var (
	defaultOnce      sync.Once
	defaultGenerator UIDGenerator
	defaultErr       error
)

// Default returns a lazily-initialized process-wide UIDGenerator,
// building it from opts on the first call. Later calls return the same
// instance and ignore their options, so every caller shares one
// generator and one sequence state. Hosts with a composition root should
// prefer constructing and injecting an instance via New.
func Default(opts Options) (UIDGenerator, error) {
	defaultOnce.Do(func() {
		defaultGenerator, defaultErr = New(opts)
	})
	return defaultGenerator, defaultErr
}
