// Package version exposes the build version of the translation hub.
package version

// Version is the current release, overridable at build time via
// -ldflags "-X transhub/internal/version.Version=x.y.z".
var Version = "1.0.0"
