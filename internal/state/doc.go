// Package state shares the latest hydrus page tree between the poller and
// the page browser.
//
// The poller calls Store.Update after each refresh; the UI reads copies with
// Store.Snapshot. A failed refresh keeps the previous pages and records the
// error, and two consecutive failures mark the snapshot offline.
package state
