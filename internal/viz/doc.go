// Package viz provides terminal-based visualization for gas simulations.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live simulation view with container, particles, and charts
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset particles
//	H / C - Heat / cool the gas
//	< / > - Shrink / widen the container
//	+ / - - Add / remove particles
//	P     - Toggle particle-particle collisions
//	?     - Show help overlay
package viz
