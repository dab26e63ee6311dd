// Package history stores accepted input lines and supports walking
// and searching them.
//
// A Store is the append-only log. Browsing state lives in a separate
// Browser so that several prompts can share one Store: each Browser
// tracks its own position and stashes the in-progress line while the
// user walks older entries, restoring it when they walk back past the
// newest entry.
package history
