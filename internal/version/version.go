// Package version holds build metadata, set with -ldflags at release time:
//
//	go build -ldflags "-X github.com/domeafavour/hello-ast/internal/version.Version=v1.0.0" ./cmd/mdc
package version

var Version = "dev"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version for --version output.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
