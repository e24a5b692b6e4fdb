// Package ui provides the terminal page browser for hydrant.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never talks to hydrus directly: a poller
// in package app writes the page tree and API version into a state.Store, and
// the model reads snapshots from that store on every tick. Actions that reach
// hydrus (refresh, focus) are injected as closures through Options so the
// model stays testable without a server.
//
// # Package Structure
//
//   - app.go: model, update loop, messages and commands, Run
//   - view.go: header, page list and footer rendering
//   - keys.go: key bindings and help text
//   - theme.go: color themes and derived lipgloss styles
//
// # Key Bindings
//
//   - j/k or arrows: move the cursor
//   - g/G: jump to top or bottom
//   - enter: focus the page in the hydrus client
//   - r: refresh now
//   - K: show or hide page keys
//   - T: cycle theme
//   - ?: full help
//   - q or Ctrl+C: exit
//
// Theme and key visibility are saved to the prefs file whenever they change.
package ui
