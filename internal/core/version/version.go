// Package version exposes build metadata for the running service.
package version

// BuildInfo describes the binary currently serving traffic.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build metadata. Version, commit, and date are stamped at
// build time via -ldflags -X on the package variables below.
func Info() BuildInfo {
	return BuildInfo{
		Service: "foodscan-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
