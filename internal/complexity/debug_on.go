//go:build lzdebug

package complexity

// Built with -tags lzdebug: invariant violations panic instead of returning
// ErrInternal.
const debugAssertions = true
