package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-notes/internal/utils"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,

	// A proxy in front of the server answers these while it is down.
	http.StatusBadGateway:         ErrBadGateway,
	http.StatusServiceUnavailable: ErrBadGateway,
	http.StatusGatewayTimeout:     ErrBadGateway,
}

// mapHTTPError turns a non-2xx response into one of the sentinel errors of
// this package. The server's {"error": "..."} message is kept as context.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	msg := errorMessage(resp.Body())
	if sentinel, ok := statusErrors[status]; ok {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}

	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("http %d: %s", status, msg)
}

func errorMessage(raw []byte) string {
	var e utils.ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Error != "" {
		return e.Error
	}

	return strings.TrimSpace(string(raw))
}
