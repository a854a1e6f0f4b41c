package cliconfig

import (
	"runtime/debug"
	"strings"
	"time"
)

// BuildInfo is what we could learn about how the running binary was built.
type BuildInfo struct {
	// Version is the module version tag if the binary was built with "go install url/tool@version",
	// otherwise "(devel)".
	Version    string
	Revision   string
	LastCommit time.Time
	DirtyBuild bool
}

// ReadBuildInfo fills a BuildInfo from the vcs.* settings stamped in by the Go toolchain.  ok is
// false when the binary carries no build info at all.
func ReadBuildInfo() (BuildInfo, bool) {
	b := BuildInfo{Version: "unknown", Revision: "unknown", DirtyBuild: true}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b, false
	}
	if info.Main.Version != "" {
		b.Version = info.Main.Version
	}
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			b.Revision = kv.Value
		case "vcs.time":
			b.LastCommit, _ = time.Parse(time.RFC3339, kv.Value)
		case "vcs.modified":
			b.DirtyBuild = kv.Value == "true"
		}
	}
	return b, true
}

// Short renders e.g. "v1.2.0-rev-abc123-dirty", or "devel" when nothing useful is known.
func (b BuildInfo) Short() string {
	parts := make([]string, 0, 4)
	if b.Version != "unknown" && b.Version != "(devel)" && b.Version != "" {
		parts = append(parts, b.Version)
	}
	if b.Revision != "unknown" && b.Revision != "" {
		parts = append(parts, "rev", b.Revision)
		if b.DirtyBuild {
			parts = append(parts, "dirty")
		}
	}
	if len(parts) == 0 {
		return "devel"
	}
	return strings.Join(parts, "-")
}
