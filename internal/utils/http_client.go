package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client bound to baseURL. A zero timeout
// leaves resty's default (no timeout) in place.
//
//	client := utils.NewHTTPClient("http://localhost:8080", 30*time.Second)
//	resp, err := client.R().Get("/api/notes/")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
