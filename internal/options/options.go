// Package options implements generic functional options shared by all packages.
package options

// OptionConstructor builds the default value of an options struct.
type OptionConstructor[T any] func() T

// OptionCallback modifies an options struct.
type OptionCallback[T any] func(*T)

// ApplyOptions builds options with constructor (zero value if nil) and applies
// callbacks in order. Nil callbacks are skipped.
func ApplyOptions[T any](constructor OptionConstructor[T], cbs []OptionCallback[T]) T {
	var opts T

	if constructor != nil {
		opts = constructor()
	}

	for _, cb := range cbs {
		if cb != nil {
			cb(&opts)
		}
	}

	return opts
}
