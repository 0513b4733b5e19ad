// Package logtail reads the backoffice activity log.
//
// Read returns the last N lines of a file using a ring buffer, so memory use
// is bounded by N rather than the file size. Follower picks up lines
// appended since its previous call; the activity view polls it on a timer.
//
// Both treat a missing file as empty: the log is created lazily on the first
// write.
package logtail
