// Package version exposes the application version string.
package version

// Version is the application version embedded in health responses and
// backup metadata.
const Version = "v0.2.1"
