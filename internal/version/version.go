// Package version reports build information for the binaries.
//
// Release builds set the values with ldflags, e.g.
//
//	go build -ldflags "-X github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/version.version=v1.2.0"
//
// otherwise the vcs information recorded by the go toolchain is used when available.
package version

import (
	"runtime/debug"
	"sync"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type Info struct {
	Version   string
	BuildDate string
	GitCommit string
}

var (
	once sync.Once
	info Info
)

func Get() Info {
	once.Do(func() {
		info = Info{
			Version:   version,
			BuildDate: buildDate,
			GitCommit: gitCommit,
		}

		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "unknown" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "unknown" {
					info.BuildDate = s.Value
				}
			}
		}
	})
	return info
}
