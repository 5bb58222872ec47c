// Package settings provides the key-value settings store the lifecycle
// manager persists durable state into, plus the EnabledSet type that models
// the enabled-extension list stored under a single JSON-encoded key.
package settings
