package zkcompose

// Version is set at build time via ldflags.
var Version = "v0.0.0-in-progress"

// LibraryVersion returns the module version.
func LibraryVersion() string {
	return Version
}
