package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
	"github.com/go-resty/resty/v2"
)

type sharedSnapshot struct {
	etag string
	note models.Note
}

type httpServerAdapter struct {
	client  *utils.HTTPClient
	baseURL string

	hashKey string

	mu     sync.RWMutex
	token  string
	shared map[string]sharedSnapshot

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] for the server at adapterCfg.HTTPAddress.
//
// When appCfg.HashKey is set every request body is signed with HMAC-SHA256
// in the HashSHA256 header.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		baseURL: baseURL,
		hashKey: appCfg.HashKey,
		shared:  make(map[string]sharedSnapshot),
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) ShareURL(token string) string {
	return h.baseURL + "/s/" + url.PathEscape(token)
}

// Register implements [ServerAdapter] with POST /api/user/register.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

// Login implements [ServerAdapter] with POST /api/user/login.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.User, error) {
	var found models.User

	req, err := h.signedRequest(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	resp, err := req.SetResult(&found).Post(path)
	if err != nil {
		return models.User{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return found, nil
}

func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).SetResult(&user).Get("/api/user/")
	if err != nil {
		return models.User{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note

	resp, err := h.authedRequest(ctx).SetResult(&notes).Get("/api/notes/")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}

	return notes, nil
}

func (h *httpServerAdapter) GetNote(ctx context.Context, noteID string) (models.Note, error) {
	var note models.Note

	resp, err := h.authedRequest(ctx).SetResult(&note).Get(notePath(noteID))
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}

	return note, mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateNote(ctx context.Context, content models.NoteContent) (models.Note, error) {
	return h.writeNote(ctx, http.MethodPost, "/api/notes/", content)
}

func (h *httpServerAdapter) UpdateNote(ctx context.Context, noteID string, content models.NoteContent) (models.Note, error) {
	return h.writeNote(ctx, http.MethodPut, notePath(noteID), content)
}

func (h *httpServerAdapter) DeleteNote(ctx context.Context, noteID string) error {
	resp, err := h.authedRequest(ctx).Delete(notePath(noteID))
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ShareNote(ctx context.Context, noteID string) (models.Note, error) {
	return h.writeNote(ctx, http.MethodPost, notePath(noteID)+"/share", nil)
}

func (h *httpServerAdapter) SetPublicEdit(ctx context.Context, noteID string, allow bool) (models.Note, error) {
	return h.writeNote(ctx, http.MethodPut, notePath(noteID)+"/share", models.ShareSettings{AllowPublicEdit: allow})
}

func (h *httpServerAdapter) StopSharing(ctx context.Context, noteID string) (models.Note, error) {
	return h.writeNote(ctx, http.MethodDelete, notePath(noteID)+"/share", nil)
}

// GetSharedNote implements [ServerAdapter]. The last seen revision of every
// token is remembered and revalidated with If-None-Match.
func (h *httpServerAdapter) GetSharedNote(ctx context.Context, token string) (models.Note, error) {
	var note models.Note

	h.mu.RLock()
	snapshot, cached := h.shared[token]
	h.mu.RUnlock()

	req := h.client.R().SetContext(ctx).SetResult(&note)
	if cached {
		req.SetHeader("If-None-Match", snapshot.etag)
	}

	resp, err := req.Get(sharePath(token))
	if err != nil {
		return models.Note{}, fmt.Errorf("get shared note request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotModified && cached {
		return snapshot.note, nil
	}
	if err = mapHTTPError(resp); err != nil {
		h.forgetShared(token)
		return models.Note{}, err
	}

	if etag := resp.Header().Get("ETag"); etag != "" {
		h.mu.Lock()
		h.shared[token] = sharedSnapshot{etag: etag, note: note}
		h.mu.Unlock()
	}

	return note, nil
}

func (h *httpServerAdapter) UpdateSharedNote(ctx context.Context, token string, content models.NoteContent) (models.Note, error) {
	var note models.Note

	req, err := h.signedRequest(ctx, content)
	if err != nil {
		return models.Note{}, err
	}
	resp, err := req.SetResult(&note).Put(sharePath(token))
	if err != nil {
		return models.Note{}, fmt.Errorf("update shared note request: %w", err)
	}
	h.forgetShared(token)

	return note, mapHTTPError(resp)
}

func (h *httpServerAdapter) forgetShared(token string) {
	h.mu.Lock()
	delete(h.shared, token)
	h.mu.Unlock()
}

func (h *httpServerAdapter) writeNote(ctx context.Context, method, path string, body any) (models.Note, error) {
	var note models.Note

	req, err := h.signedRequest(ctx, body)
	if err != nil {
		return models.Note{}, err
	}
	h.withAuth(req)

	resp, err := req.SetResult(&note).Execute(method, path)
	if err != nil {
		return models.Note{}, fmt.Errorf("%s %s request: %w", method, path, err)
	}

	return note, mapHTTPError(resp)
}

// signedRequest marshals body once so that the HashSHA256 header covers
// exactly the bytes on the wire. A nil body sends no payload.
func (h *httpServerAdapter) signedRequest(ctx context.Context, body any) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)
	if body == nil {
		return req, nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error encoding request body: %w", err)
	}
	req.SetHeader("Content-Type", "application/json").SetBody(payload)
	if h.hashKey != "" {
		req.SetHeader(utils.HashHeader, utils.HashString(string(payload), h.hashKey))
	}

	return req, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	return h.withAuth(h.client.R().SetContext(ctx))
}

func (h *httpServerAdapter) withAuth(req *resty.Request) *resty.Request {
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func notePath(noteID string) string {
	return "/api/notes/" + url.PathEscape(noteID)
}

func sharePath(token string) string {
	return "/api/share/" + url.PathEscape(token)
}
