// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-notes/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("application: go-notes\n")
	b.WriteString("version:     " + info.Version() + "\n")
	b.WriteString("built:       " + info.Date() + "\n")
	b.WriteString("commit:      " + info.Commit())

	return renderPage("about", b.String(), "esc: back")
}
