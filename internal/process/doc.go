// Package process manages the lifetime of external browser processes.
// A headless browser forks helper processes; killing only the leader on
// timeout would leave them running, so callers isolate the command and kill
// the whole group.
package process
