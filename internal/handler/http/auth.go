// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
)

// register creates an account and signs the new user in. The token is
// returned in the Authorization header, the user in the body.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !readBody(w, r, "*Handler.register", &user) {
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, "*Handler.register", err)
		return
	}

	h.issueToken(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !readBody(w, r, "*Handler.login", &user) {
		return
	}

	foundUser, err := h.services.AuthService.Login(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, "*Handler.login", err)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")
	h.issueToken(w, r, foundUser)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeServiceError(w, r, "*Handler.issueToken", err)
		return
	}

	w.Header().Set("Authorization", token.Bearer())
	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "*Handler.currentUser", err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}
