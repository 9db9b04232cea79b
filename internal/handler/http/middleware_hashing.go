package http

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/MKhiriev/go-notes/internal/app"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/utils"
)

// withHashCheck verifies the HashSHA256 header against the raw request
// body. Requests without the header, or servers without a hash key, pass
// through unchecked.
func (h *Handler) withHashCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := r.Header.Get(utils.HashHeader)
		if !h.verifyHash || expected == "" || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
		if tooLarge(err) {
			log.Warn().Str("func", "*Handler.withHashCheck").Msg("request body is too large")
			utils.WriteError(w, app.MsgContentTooLarge, http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Err(err).Str("func", "*Handler.withHashCheck").Msg("failed to read request body")
			utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		actual := hex.EncodeToString(utils.Hash(body))
		if actual != expected {
			log.Error().Str("func", "*Handler.withHashCheck").
				Str("hash from request", expected).
				Str("hashed body", actual).
				Msg("hashes are not equal")
			utils.WriteError(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
