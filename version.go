package sonolog

// Version is the release version, overridable at build time via
// -ldflags "-X github.com/bonsono/sonolog.Version=...".
var Version = "0.1.0"
