// Package version 版本与构建信息
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// 通过 -ldflags "-X" 注入
var (
	Version   = "v0.1.0"
	BuildTime = "unknown" // RFC3339
	BuildEnv  = "development"
)

// BuildInfo 构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time"`
	BuildEnv  string `json:"build_env"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion 版本号
func GetVersion() string {
	return Version
}

// GetBuildInfo 收集构建信息，commit 取自 go 工具链嵌入的 vcs 信息
func GetBuildInfo() *BuildInfo {
	info := &BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		BuildEnv:  BuildEnv,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Commit = vcsRevision(bi.Settings)
	}
	return info
}

func vcsRevision(settings []debug.BuildSetting) string {
	var rev string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev
}

// GetFullVersion version 命令的文本输出
func GetFullVersion() string {
	info := GetBuildInfo()

	var b strings.Builder
	fmt.Fprintf(&b, "ethwallet %s", info.Version)
	if info.Commit != "" {
		fmt.Fprintf(&b, " (%s)", info.Commit)
	}
	if info.BuildTime != "unknown" {
		built := info.BuildTime
		if t, err := time.Parse(time.RFC3339, built); err == nil {
			built = t.Format("2006-01-02 15:04:05 MST")
		}
		fmt.Fprintf(&b, "\n构建时间: %s", built)
	}
	fmt.Fprintf(&b, "\n构建环境: %s", info.BuildEnv)
	fmt.Fprintf(&b, "\nGo版本: %s", info.GoVersion)
	fmt.Fprintf(&b, "\n平台: %s", info.Platform)
	return b.String()
}
