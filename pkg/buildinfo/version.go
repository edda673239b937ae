// Package buildinfo carries version metadata stamped into the binary at
// build time:
//
//	go build -ldflags "-X github.com/tracekit/tracekit/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/tracekit/tracekit/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/tracekit/tracekit/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

// Stamped via -ldflags -X; see the package comment.
var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String renders the stamped fields one per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template for the root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
