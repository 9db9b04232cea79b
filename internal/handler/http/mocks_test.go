package http

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/models"
)

var errUnexpected = errors.New("unexpected")

// mockAuthService implements service.AuthService. Unset fields panic so that
// a test notices calls it did not expect.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	getUserFn      func(ctx context.Context, userID int64) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn == nil {
		return stubToken("signed-token"), nil
	}
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn == nil {
		if tokenString == "valid" {
			return models.Token{UserID: 7}, nil
		}
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return m.parseTokenFn(ctx, tokenString)
}

type mockNoteService struct {
	createFn        func(ctx context.Context, userID int64, content models.NoteContent) (models.Note, error)
	listFn          func(ctx context.Context, userID int64) ([]models.Note, error)
	getFn           func(ctx context.Context, userID int64, noteID string) (models.Note, error)
	updateFn        func(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error)
	deleteFn        func(ctx context.Context, userID int64, noteID string) error
	shareFn         func(ctx context.Context, userID int64, noteID string) (models.Note, error)
	setPublicEditFn func(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error)
	stopSharingFn   func(ctx context.Context, userID int64, noteID string) (models.Note, error)
}

func (m *mockNoteService) Create(ctx context.Context, userID int64, content models.NoteContent) (models.Note, error) {
	return m.createFn(ctx, userID, content)
}

func (m *mockNoteService) List(ctx context.Context, userID int64) ([]models.Note, error) {
	return m.listFn(ctx, userID)
}

func (m *mockNoteService) Get(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	return m.getFn(ctx, userID, noteID)
}

func (m *mockNoteService) Update(ctx context.Context, userID int64, noteID string, content models.NoteContent) (models.Note, error) {
	return m.updateFn(ctx, userID, noteID, content)
}

func (m *mockNoteService) Delete(ctx context.Context, userID int64, noteID string) error {
	return m.deleteFn(ctx, userID, noteID)
}

func (m *mockNoteService) Share(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	return m.shareFn(ctx, userID, noteID)
}

func (m *mockNoteService) SetPublicEdit(ctx context.Context, userID int64, noteID string, allow bool) (models.Note, error) {
	return m.setPublicEditFn(ctx, userID, noteID, allow)
}

func (m *mockNoteService) StopSharing(ctx context.Context, userID int64, noteID string) (models.Note, error) {
	return m.stopSharingFn(ctx, userID, noteID)
}

type mockShareService struct {
	getFn    func(ctx context.Context, token string) (models.Note, error)
	updateFn func(ctx context.Context, token string, content models.NoteContent) (models.Note, error)
	renderFn func(ctx context.Context, token string) (models.Note, string, error)
}

func (m *mockShareService) Get(ctx context.Context, token string) (models.Note, error) {
	return m.getFn(ctx, token)
}

func (m *mockShareService) Update(ctx context.Context, token string, content models.NoteContent) (models.Note, error) {
	return m.updateFn(ctx, token, content)
}

func (m *mockShareService) Render(ctx context.Context, token string) (models.Note, string, error) {
	return m.renderFn(ctx, token)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetServerInfo(_ context.Context) models.ServerInfo {
	return models.ServerInfo{Version: m.version, MaxTitleRunes: 500, MaxContentBytes: 1 << 20}
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(_ context.Context) error {
	return m.err
}

func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed, UserID: 7}
}

func strPtr(s string) *string {
	return &s
}

// newTestHandler builds a Handler over the given services. Nil services are
// replaced with empty mocks.
func newTestHandler(svcs *service.Services) *Handler {
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test-version"}
	}
	if svcs.NoteService == nil {
		svcs.NoteService = &mockNoteService{}
	}
	if svcs.ShareService == nil {
		svcs.ShareService = &mockShareService{}
	}
	return NewHandler(svcs, nil, config.App{}, logger.Nop())
}
