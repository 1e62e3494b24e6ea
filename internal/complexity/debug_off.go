//go:build !lzdebug

package complexity

const debugAssertions = false
