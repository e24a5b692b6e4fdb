// Package app is the composition root of the page browser.
//
// Run loads the config, opens the log file, builds the HTTP transport with
// Prometheus metrics, and wraps it in a hydrus.Hydrus. It then fills a
// state.Store once, starts the background poller, and hands control to the
// Bubble Tea UI until the user quits or the context is cancelled.
//
// The poller refreshes the API version and the page tree every
// poll_interval. While hydrus is unreachable the delay doubles per
// consecutive failure, capped at 30s, and resets after a success.
//
// When metrics_addr is set, /metrics is served on that address for the
// lifetime of the context. NewHydrus is shared with the one-shot CLI
// commands.
package app
