// Package buildinfo holds version information set at build time:
//
//	go build -ldflags "-X github.com/willbeason/newton-fractal/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/willbeason/newton-fractal/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/willbeason/newton-fractal/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
