// Package extension discovers installed extension packages and maintains the
// process-wide registry of descriptors. Discovery reads the host's install
// manifest once, builds a title-sorted collection, and memoizes it until
// Refresh is called (or the fsnotify watcher observes a manifest change).
package extension
