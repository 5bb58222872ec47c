// Package manifest handles parsing and validation of the two JSON documents
// the extension subsystem consumes: the host's install manifest (the list of
// every installed package) and the per-extension manifest (extension.json at
// a package root). Validation is JSON Schema based.
package manifest
