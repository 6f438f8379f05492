// Package newton finds polynomial roots with Newton-Raphson iteration.
//
// Each starting point is iterated independently; an Iterator holds no per-point
// state and may be shared between goroutines.
//
// A zero derivative makes the step undefined. Instead of letting NaN or
// infinities reach the caller, Iterate stops and marks the Result Degenerate.
package newton
