package version

import "runtime/debug"

// String reports the module version baked into the binary, or (devel)
// for local builds.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}
	return info.Main.Version
}
