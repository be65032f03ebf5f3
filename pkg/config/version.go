package config

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// 版本信息，发布构建时通过 -ldflags "-X github.com/decker502/thunderwings/pkg/config.Version=..." 覆盖
var (
	Version   = "dev"
	BuildDate = "unknown"
)

const (
	Copyright  = "Copyright 2025 The Thunder Wings Authors"
	License    = "Apache License, Version 2.0"
	LicenseURL = "https://www.apache.org/licenses/LICENSE-2.0"
)

// BuildInfo 构建环境描述
type BuildInfo struct {
	GoVersion string
	Platform  string // GOOS/GOARCH
	Revision  string // VCS 提交，未知时为空
	Modified  bool   // 工作区是否有未提交修改
}

// ReadBuildInfo 读取当前二进制的构建信息
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	return info
}

// Describe 单行构建描述，例如 "go1.24.0 linux/amd64 (a1b2c3d)"
func (b BuildInfo) Describe() string {
	s := b.GoVersion + " " + b.Platform
	if b.Revision != "" {
		rev := b.Revision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if b.Modified {
			rev += "-dirty"
		}
		s += " (" + rev + ")"
	}
	return s
}

// VersionLines --version 输出
func VersionLines(b BuildInfo) []string {
	return []string{
		fmt.Sprintf("thunderwings %s", Version),
		fmt.Sprintf("Built on %s", BuildDate),
		fmt.Sprintf("Build: %s", b.Describe()),
		Copyright,
		fmt.Sprintf("Licensed under the %s", License),
		fmt.Sprintf("See %s", LicenseURL),
	}
}
