// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-notes/internal/app"
)

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request has no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New(app.MsgEmptyAuthorizationHeader)

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	ErrIntegrityCheckFailed = errors.New(app.MsgIntegrityCheckFailed)

	ErrInvalidJSON = errors.New(app.MsgInvalidJSON)
)
