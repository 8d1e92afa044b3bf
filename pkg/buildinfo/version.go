// Package buildinfo reports which build of sparklines is running.
//
// Release builds set the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/sparklines/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/sparklines/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/sparklines/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Other builds fall back to the VCS stamp the go tool embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var stamp = sync.OnceValues(func() (string, string) {
	commit, date := Commit, Date
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "":
				commit = s.Value
			case s.Key == "vcs.time" && date == "":
				date = s.Value
			}
		}
	}
	return commit, date
})

// Revision returns the commit and build time, empty when unknown.
func Revision() (commit, date string) { return stamp() }

// Template is the cobra --version template.
func Template() string {
	commit, date := Revision()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, orUnknown(commit), orUnknown(date))
}

// CacheScope prefixes cache keys so that artifacts never cross builds.
// Development builds also scope by commit, since geometry may change
// between them without a version bump.
func CacheScope() string {
	scope := Version
	if commit, _ := Revision(); Version == "dev" && commit != "" {
		scope += "+" + short(commit)
	}
	return "sparklines:" + scope + ":"
}

func short(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
