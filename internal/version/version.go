// Package version identifies the running build.
package version

// Service is the name reported by health checks and traces
const Service = "codelens-api"

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"
