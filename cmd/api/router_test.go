package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	articleHandler "article-catalog/internal/domains/article/handler"
	"article-catalog/internal/domains/article/model"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type emptyCatalog struct{}

func (emptyCatalog) List(context.Context) ([]model.ArticleView, error) {
	return []model.ArticleView{}, nil
}

func (emptyCatalog) Create(context.Context, *model.CreateArticleRequest) (*model.CreateArticleResponse, error) {
	return &model.CreateArticleResponse{ArticleID: 1, AuthorID: 1}, nil
}

func (emptyCatalog) Update(context.Context, int64, *model.UpdateArticleRequest) error { return nil }

func (emptyCatalog) Delete(context.Context, int64) (int64, error) { return 0, nil }

func (emptyCatalog) DeleteAll(context.Context) (int64, error) { return 0, nil }

func testRouter(db, cache pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(articleHandler.NewArticleHandler(emptyCatalog{}), db, cache, "test")
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     pinger
		cache  pinger
		status int
		redis  string
	}{
		{"all up", fakePinger{}, fakePinger{}, http.StatusOK, "ok"},
		{"redis down is not fatal", fakePinger{}, fakePinger{err: errors.New("refused")}, http.StatusOK, "error: refused"},
		{"no cache configured", fakePinger{}, nil, http.StatusOK, "disabled"},
		{"database down", fakePinger{err: errors.New("refused")}, fakePinger{}, http.StatusServiceUnavailable, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			testRouter(tt.db, tt.cache).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
			assert.Equal(t, tt.status, w.Code)

			var body struct {
				Services map[string]string `json:"services"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.redis, body.Services["redis"])
		})
	}
}

func TestArticleRoutesRegistered(t *testing.T) {
	r := testRouter(fakePinger{}, nil)

	routes := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/api/v1/articles", http.StatusOK},
		{http.MethodDelete, "/api/v1/articles", http.StatusOK},
		{http.MethodDelete, "/api/v1/articles/3", http.StatusOK},
	}

	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, rt.status, w.Code, rt.method+" "+rt.path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}
