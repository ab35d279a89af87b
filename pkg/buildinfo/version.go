// Package buildinfo holds version information stamped in at link time.
//
//	go build -ldflags "-X github.com/matzehuels/nestgraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/nestgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/nestgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/nestgraph
package buildinfo

import "fmt"

// Stamped by ldflags; the defaults identify a local build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies nestgraph in outgoing HTTP headers and served pages.
func UserAgent() string {
	return "nestgraph/" + Version
}
