// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

const notAvailable = "N/A"

// AppBuildInfo carries the version metadata injected with -ldflags into the
// server and client binaries.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: strings.TrimSpace(version),
		date:    strings.TrimSpace(date),
		commit:  strings.TrimSpace(commit),
	}
}

// Version returns the release version or "N/A" for local builds.
func (a AppBuildInfo) Version() string {
	return orNotAvailable(a.version)
}

func (a AppBuildInfo) Date() string {
	return orNotAvailable(a.date)
}

func (a AppBuildInfo) Commit() string {
	return orNotAvailable(a.commit)
}

// String renders the three lines printed by the binaries at start.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.Version(), a.Date(), a.Commit())
}

func orNotAvailable(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
