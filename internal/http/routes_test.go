package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
	"github.com/journalsoc/journal-api/internal/mocks"
	mockauth "github.com/journalsoc/journal-api/internal/mocks/auth"
	"github.com/journalsoc/journal-api/internal/service"
	"github.com/journalsoc/journal-api/internal/testutil"
)

type routerFixture struct {
	handler  http.Handler
	posts    *mocks.MockPostRepository
	profiles *mocks.MockProfileRepository
	sessions *mockauth.MemorySessionStore
}

func newRouter(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	posts := mocks.NewMockPostRepository(ctrl)
	profiles := mocks.NewMockProfileRepository(ctrl)
	sessions := mockauth.NewMemorySessionStore()

	roleSvc := service.NewRoleService(service.RoleServiceOptions{Profiles: profiles})
	moderationSvc := service.NewModerationService(service.ModerationServiceOptions{
		Posts:    posts,
		Profiles: profiles,
	})
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Provider: mockauth.NewMockAuthProvider(),
		Sessions: sessions,
		Roles:    &mockauth.StaticRoleMapper{},
	})

	handler := NewRouter(RouterServices{
		Moderation: moderationSvc,
		Roles:      roleSvc,
		Auth:       authSvc,
		Events:     service.NewSessionEvents(),
	})
	return &routerFixture{handler: handler, posts: posts, profiles: profiles, sessions: sessions}
}

// saveSession stores a session so requests carrying its cookie authenticate.
func (f *routerFixture) saveSession(t *testing.T, session domainauth.Session) {
	t.Helper()
	session.ExpiresAt = time.Now().Add(time.Hour)
	require.NoError(t, f.sessions.Save(context.Background(), session))
}

func TestRouter_Healthz(t *testing.T) {
	f := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestRouter_PublishedListIsPublic(t *testing.T) {
	f := newRouter(t)

	f.posts.EXPECT().ListByReviewed(gomock.Any(), true).Return([]*model.Post{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PublishedListAcceptsSession(t *testing.T) {
	f := newRouter(t)
	session := testutil.WriterSession()
	f.saveSession(t, session)

	f.posts.EXPECT().ListByReviewed(gomock.Any(), true).Return([]*model.Post{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: session.ID})
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ReviewQueueRequiresAuth(t *testing.T) {
	f := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/review", nil)
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ReviewQueueWithAdminSession(t *testing.T) {
	f := newRouter(t)
	session := testutil.AdminSession()
	f.saveSession(t, session)

	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).AsAdmin().Build(), nil)
	f.posts.EXPECT().ListByReviewed(gomock.Any(), false).Return([]*model.Post{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/review", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: session.ID})
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ProfilesRequireAdminSession(t *testing.T) {
	f := newRouter(t)
	session := testutil.WriterSession()
	f.saveSession(t, session)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: session.ID})
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
