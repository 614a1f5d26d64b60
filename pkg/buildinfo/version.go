// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/jmuviz/sankeyflow/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/jmuviz/sankeyflow/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/jmuviz/sankeyflow/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/sankey
package buildinfo

import "fmt"

var (
	Version = "dev"     // Semantic version
	Commit  = "none"    // Git commit
	Date    = "unknown" // Build timestamp (UTC)
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} version " + Version + "\n" + "commit: " + Commit + "\nbuilt: " + Date + "\n"
}
