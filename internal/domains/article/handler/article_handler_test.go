package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-catalog/internal/domains/article/model"
	"article-catalog/internal/domains/article/repository"
	"article-catalog/internal/domains/article/service"
	authorModel "article-catalog/internal/domains/author/model"
	authorRepo "article-catalog/internal/domains/author/repository"
	authorService "article-catalog/internal/domains/author/service"
	"article-catalog/internal/shared/apperror"
)

type stubService struct {
	views     []model.ArticleView
	created   *model.CreateArticleResponse
	err       error
	deleted   int64
	updatedID int64
	createReq *model.CreateArticleRequest
	updateReq *model.UpdateArticleRequest
}

func (s *stubService) List(context.Context) ([]model.ArticleView, error) {
	return s.views, s.err
}

func (s *stubService) Create(_ context.Context, req *model.CreateArticleRequest) (*model.CreateArticleResponse, error) {
	s.createReq = req
	return s.created, s.err
}

func (s *stubService) Update(_ context.Context, id int64, req *model.UpdateArticleRequest) error {
	s.updatedID = id
	s.updateReq = req
	return s.err
}

func (s *stubService) Delete(context.Context, int64) (int64, error) {
	return s.deleted, s.err
}

func (s *stubService) DeleteAll(context.Context) (int64, error) {
	return s.deleted, s.err
}

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewArticleHandler(svc)

	r := gin.New()
	articles := r.Group("/api/v1/articles")
	articles.GET("", h.ListArticles)
	articles.POST("", h.CreateArticle)
	articles.DELETE("", h.DeleteAllArticles)
	articles.PUT("/:id", h.UpdateArticle)
	articles.DELETE("/:id", h.DeleteArticle)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestListArticles(t *testing.T) {
	date := "2021-05-01"
	svc := &stubService{views: []model.ArticleView{
		{ArticleID: 1, AuthorID: 1, Title: "T", Author: "Ada", PublishedOn: &date, Body: "B"},
	}}

	w, env := do(t, newRouter(svc), http.MethodGet, "/api/v1/articles", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var views []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Ada", views[0]["author"])
	assert.Equal(t, "2021-05-01", views[0]["publishedOn"])
	assert.Contains(t, views[0], "authorUrl")
}

func TestCreateArticle(t *testing.T) {
	svc := &stubService{created: &model.CreateArticleResponse{ArticleID: 4, AuthorID: 2}}

	body := `{"author":"Ada","authorUrl":"https://ada.dev","title":"T","category":"tech","publishedOn":"2020-02-02","body":"B"}`
	w, env := do(t, newRouter(svc), http.MethodPost, "/api/v1/articles", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"article_id":4,"author_id":2}`, string(env.Data))
	require.NotNil(t, svc.createReq)
	assert.Equal(t, "Ada", svc.createReq.Author)
	assert.Equal(t, "https://ada.dev", *svc.createReq.AuthorURL)
	assert.Equal(t, "2020-02-02", *svc.createReq.PublishedOn)
}

func TestCreateArticle_MalformedJSON(t *testing.T) {
	w, env := do(t, newRouter(&stubService{}), http.MethodPost, "/api/v1/articles", `{"author":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "INVALID_REQUEST_BODY", env.Error.Code)
}

func TestCreateArticle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperror.Validation("VALIDATION_ERROR", assert.AnError), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown author", model.ErrUnknownAuthor, http.StatusUnprocessableEntity, "UNKNOWN_AUTHOR"},
		{"resolve conflict", authorModel.ErrResolveConflict, http.StatusConflict, "AUTHOR_RESOLVE_CONFLICT"},
		{"storage down", apperror.StorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
		{"untyped", assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			w, env := do(t, newRouter(svc), http.MethodPost, "/api/v1/articles", `{"author":"A","title":"T","body":"B"}`)

			assert.Equal(t, tt.status, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestCreateArticle_InternalErrorIsNotLeaked(t *testing.T) {
	svc := &stubService{err: assert.AnError}

	_, env := do(t, newRouter(svc), http.MethodPost, "/api/v1/articles", `{"author":"A","title":"T","body":"B"}`)
	assert.Equal(t, "internal server error", env.Error.Message)
}

func TestUpdateArticle(t *testing.T) {
	svc := &stubService{}

	w, env := do(t, newRouter(svc), http.MethodPut, "/api/v1/articles/9", `{"title":"New"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, int64(9), svc.updatedID)
	require.NotNil(t, svc.updateReq.Title)
	assert.Equal(t, "New", *svc.updateReq.Title)
	assert.Nil(t, svc.updateReq.Body)
	assert.Nil(t, svc.updateReq.Author)
}

func TestUpdateArticle_NotFound(t *testing.T) {
	svc := &stubService{err: model.ErrArticleNotFound}

	w, env := do(t, newRouter(svc), http.MethodPut, "/api/v1/articles/9", `{"title":"New"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ARTICLE_NOT_FOUND", env.Error.Code)
}

func TestInvalidID(t *testing.T) {
	r := newRouter(&stubService{})

	for _, path := range []string{"/api/v1/articles/abc", "/api/v1/articles/0", "/api/v1/articles/-3",
		"/api/v1/articles/-99999999999999999999", "/api/v1/articles/12abc"} {
		w, env := do(t, r, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "INVALID_ARTICLE_ID", env.Error.Code, path)
	}
}

func TestOutOfRangeID_TreatedAsMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	authors := authorRepo.NewPostgresRepository(mock, time.Second)
	svc := service.NewArticleService(
		repository.NewPostgresRepository(mock, time.Second),
		authors,
		authorService.NewAuthorService(authors),
		mock,
		time.Second,
		nil,
		time.Minute,
	)

	gin.SetMode(gin.TestMode)
	h := NewArticleHandler(svc)
	r := gin.New()
	r.PUT("/api/v1/articles/:id", h.UpdateArticle)
	r.DELETE("/api/v1/articles/:id", h.DeleteArticle)

	// past int4 and past int64
	for _, id := range []string{"3000000000", "99999999999999999999"} {
		w, env := do(t, r, http.MethodDelete, "/api/v1/articles/"+id, "")
		assert.Equal(t, http.StatusOK, w.Code, id)
		assert.JSONEq(t, `{"deleted":0}`, string(env.Data), id)

		mock.ExpectBegin()
		mock.ExpectRollback()
		w, env = do(t, r, http.MethodPut, "/api/v1/articles/"+id, `{"title":"New"}`)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
		require.NotNil(t, env.Error, id)
		assert.Equal(t, "ARTICLE_NOT_FOUND", env.Error.Code, id)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteArticle_Missing(t *testing.T) {
	svc := &stubService{deleted: 0}

	w, env := do(t, newRouter(svc), http.MethodDelete, "/api/v1/articles/404", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":0}`, string(env.Data))
}

func TestDeleteAllArticles(t *testing.T) {
	svc := &stubService{deleted: 7}

	w, env := do(t, newRouter(svc), http.MethodDelete, "/api/v1/articles", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":7}`, string(env.Data))
}
