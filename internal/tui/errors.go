// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-notes/internal/app"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/store"
)

var ErrUserQuit = errors.New("user quit")

const msgServerUnavailable = "server is unavailable, try again later"

// errorText turns a service error into the line shown under a form.
func errorText(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrWrongPassword):
		return app.MsgWrongEmailPassword
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return app.MsgEmailAlreadyExists
	case errors.Is(err, service.ErrNoteNotShared):
		return app.MsgNoteNotShared
	case errors.Is(err, store.ErrNoteNotFound):
		return app.MsgNoteNotFound
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "session expired, sign in again"
	case errors.Is(err, service.ErrPublicEditNotAllowed):
		return app.MsgPublicEditNotAllowed
	}

	if serverUnavailable(err) {
		return msgServerUnavailable
	}
	return err.Error()
}

func serverUnavailable(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded")
}

// signedOutByServer reports whether err means the stored token is no longer
// accepted and the user has to sign in again.
func signedOutByServer(err error) bool {
	return errors.Is(err, service.ErrTokenIsExpiredOrInvalid) || errors.Is(err, service.ErrSessionExpired)
}
