// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-notes/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the interactive client and blocks until the user quits or
	// ctx is cancelled.
	Run(ctx context.Context) error
}

// UI is the interactive front end. session is nil when nobody is signed in.
type UI interface {
	Run(ctx context.Context, session *models.Session) error
}
