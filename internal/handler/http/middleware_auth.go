// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes/internal/app"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/utils"
)

// auth authenticates the request by its bearer token and stores the user id
// in the request context.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.auth").Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), token.UserID)))
	})
}
