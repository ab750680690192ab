// Package testing contains hand-written test doubles shared by the tests of
// all packages.
package testing

// T is the subset of testing.TB used by the test doubles.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}
