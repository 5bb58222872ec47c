// Package cli implements the extman admin commands: inspecting discovered
// extensions and driving their lifecycle transitions. It is operational
// tooling for a single administrative actor, not an end-user surface.
package cli
