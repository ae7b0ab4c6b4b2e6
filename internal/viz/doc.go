// Package viz provides terminal-based visualization for integrator runs.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: streaming view of an in-progress run (state trace,
//     timestep sparkline, order and step statistics)
//   - [RunLive]: drives a solver and feeds its samples to the view
//
// # Key Bindings
//
//	Space - Pause/Resume the display
//	C     - Cycle the plotted state component
//	Q     - Quit (cancels the run)
package viz
