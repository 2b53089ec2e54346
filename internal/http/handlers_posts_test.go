package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/journalsoc/journal-api/internal/domain/auth"
	"github.com/journalsoc/journal-api/internal/domain/model"
	apperrors "github.com/journalsoc/journal-api/internal/errors"
	"github.com/journalsoc/journal-api/internal/mocks"
	"github.com/journalsoc/journal-api/internal/service"
	"github.com/journalsoc/journal-api/internal/testutil"
)

type postHandlersFixture struct {
	handlers *PostHandlers
	posts    *mocks.MockPostRepository
	profiles *mocks.MockProfileRepository
}

func newPostHandlers(t *testing.T) *postHandlersFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	posts := mocks.NewMockPostRepository(ctrl)
	profiles := mocks.NewMockProfileRepository(ctrl)
	svc := service.NewModerationService(service.ModerationServiceOptions{
		Posts:    posts,
		Profiles: profiles,
	})
	return &postHandlersFixture{
		handlers: &PostHandlers{Svc: svc},
		posts:    posts,
		profiles: profiles,
	}
}

// requestWithSession builds a request carrying the session in its context,
// the way the auth middleware would.
func requestWithSession(method, target string, body []byte, session domainauth.Session) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(SetSessionInContext(req.Context(), &session))
}

func TestPostHandlers_Create_Writer(t *testing.T) {
	f := newPostHandlers(t)
	session := testutil.WriterSession()

	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).AsWriter().Build(), nil)
	f.posts.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, post *model.Post) (*model.Post, error) {
			created := *post
			created.ID = "post-1"
			return &created, nil
		})

	body, err := json.Marshal(map[string]string{"title": "First entry", "content": "hello"})
	require.NoError(t, err)
	req := requestWithSession(http.MethodPost, "/api/posts", body, session)
	w := httptest.NewRecorder()

	f.handlers.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var got model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "post-1", got.ID)
	assert.Equal(t, "First entry", got.Title)
	assert.Equal(t, session.UserID, got.AuthorID)
	assert.False(t, got.IsReviewed)
}

func TestPostHandlers_Create_PlainUserForbidden(t *testing.T) {
	f := newPostHandlers(t)
	session := testutil.UserSession()

	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).Build(), nil)

	body, _ := json.Marshal(map[string]string{"title": "Nope"})
	req := requestWithSession(http.MethodPost, "/api/posts", body, session)
	w := httptest.NewRecorder()

	f.handlers.Create(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")
}

func TestPostHandlers_Create_InvalidJSON(t *testing.T) {
	f := newPostHandlers(t)

	req := requestWithSession(http.MethodPost, "/api/posts", []byte("{not json"), testutil.WriterSession())
	w := httptest.NewRecorder()

	f.handlers.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_json")
}

func TestPostHandlers_Create_EmptyTitle(t *testing.T) {
	f := newPostHandlers(t)
	session := testutil.WriterSession()

	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).AsWriter().Build(), nil)

	body, _ := json.Marshal(map[string]string{"title": "   "})
	req := requestWithSession(http.MethodPost, "/api/posts", body, session)
	w := httptest.NewRecorder()

	f.handlers.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestPostHandlers_ListPublished(t *testing.T) {
	f := newPostHandlers(t)

	published := []*model.Post{
		testutil.NewPost().WithID("post-2").WithAuthor("writer-1").Reviewed().Build(),
		testutil.NewPost().WithID("post-1").WithAuthor("ghost-9").Reviewed().Build(),
	}
	f.posts.EXPECT().ListByReviewed(gomock.Any(), true).Return(published, nil)
	f.profiles.EXPECT().
		ListByIDs(gomock.Any(), []string{"writer-1", "ghost-9"}).
		Return(map[string]*model.Profile{
			"writer-1": testutil.NewProfile().WithID("writer-1").AsWriter().Build(),
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()

	f.handlers.ListPublished(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Posts []*model.PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "writer-1@example.com", resp.Posts[0].AuthorLabel)
	assert.Equal(t, model.UnknownAuthorLabel, resp.Posts[1].AuthorLabel)
}

func TestPostHandlers_ListPublished_RepoError(t *testing.T) {
	f := newPostHandlers(t)

	f.posts.EXPECT().
		ListByReviewed(gomock.Any(), true).
		Return(nil, apperrors.Unavailable("database unavailable", nil))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()

	f.handlers.ListPublished(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "collaborator_unavailable")
}

func TestPostHandlers_ListUnreviewed_Admin(t *testing.T) {
	f := newPostHandlers(t)
	session := testutil.AdminSession()

	queue := []*model.Post{
		testutil.NewPost().WithID("post-9").WithAuthor("writer-1").Build(),
		testutil.NewPost().WithID("post-8").WithAuthor("ghost-9").Build(),
	}
	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).AsAdmin().Build(), nil)
	f.posts.EXPECT().ListByReviewed(gomock.Any(), false).Return(queue, nil)
	f.profiles.EXPECT().
		ListByIDs(gomock.Any(), []string{"writer-1", "ghost-9"}).
		Return(map[string]*model.Profile{
			"writer-1": testutil.NewProfile().WithID("writer-1").AsWriter().Build(),
		}, nil)

	req := requestWithSession(http.MethodGet, "/api/posts/review", nil, session)
	w := httptest.NewRecorder()

	f.handlers.ListUnreviewed(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Posts []*model.PostView `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "post-9", resp.Posts[0].ID)
	assert.Equal(t, "writer-1@example.com", resp.Posts[0].AuthorLabel)
	assert.Equal(t, model.UnknownAuthorLabel, resp.Posts[1].AuthorLabel)
}

func TestPostHandlers_ListUnreviewed_WriterForbidden(t *testing.T) {
	f := newPostHandlers(t)
	session := testutil.WriterSession()

	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).AsWriter().Build(), nil)

	req := requestWithSession(http.MethodGet, "/api/posts/review", nil, session)
	w := httptest.NewRecorder()

	f.handlers.ListUnreviewed(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPostHandlers_Approve(t *testing.T) {
	f := newPostHandlers(t)
	session := testutil.AdminSession()

	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).AsAdmin().Build(), nil)
	f.posts.EXPECT().MarkReviewed(gomock.Any(), "post-1").Return(true, nil)

	req := requestWithSession(http.MethodPost, "/api/posts/post-1/approve", nil, session)
	req.SetPathValue("id", "post-1")
	w := httptest.NewRecorder()

	f.handlers.Approve(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approved":true`)
}

func TestPostHandlers_Approve_NotFound(t *testing.T) {
	f := newPostHandlers(t)
	session := testutil.AdminSession()

	f.profiles.EXPECT().
		GetByID(gomock.Any(), session.UserID).
		Return(testutil.NewProfile().WithID(session.UserID).AsAdmin().Build(), nil)
	f.posts.EXPECT().
		MarkReviewed(gomock.Any(), "missing").
		Return(false, apperrors.NotFoundf("post %q not found", "missing"))

	req := requestWithSession(http.MethodPost, "/api/posts/missing/approve", nil, session)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	f.handlers.Approve(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestPostHandlers_Approve_MissingID(t *testing.T) {
	f := newPostHandlers(t)

	req := requestWithSession(http.MethodPost, "/api/posts//approve", nil, testutil.AdminSession())
	w := httptest.NewRecorder()

	f.handlers.Approve(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_path")
}
