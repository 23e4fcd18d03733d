// Package loop provides the host update loop.
//
// A Driver ticks every registered Ticker at a fixed rate on a single
// goroutine. Work coming from other goroutines (input pollers, HTTP handlers)
// is handed to the loop with Post and runs before the next tick, so tick-driven
// components never need locks of their own.
package loop
