package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authorModel "article-catalog/internal/domains/author/model"
)

var notBlank = validation.By(func(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	}
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// CreateArticleRequest - POST /articles
type CreateArticleRequest struct {
	Author      string  `json:"author"`
	AuthorURL   *string `json:"authorUrl"`
	Title       string  `json:"title"`
	Category    *string `json:"category"`
	PublishedOn *string `json:"publishedOn"`
	Body        string  `json:"body"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			notBlank,
			validation.RuneLength(1, authorModel.MaxNameLength),
		),
		validation.Field(&r.AuthorURL, validation.RuneLength(0, authorModel.MaxURLLength)),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			notBlank,
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Category, validation.RuneLength(0, MaxCategoryLength)),
		validation.Field(&r.PublishedOn, validation.Date(DateLayout).Error("must be a YYYY-MM-DD date")),
		validation.Field(&r.Body, validation.Required.Error("body is required"), notBlank),
	)
}

// ToArticle converts the request; AuthorID is filled in after resolution
func (r CreateArticleRequest) ToArticle() (*Article, error) {
	publishedOn, err := ParseDate(r.PublishedOn)
	if err != nil {
		return nil, err
	}
	return &Article{
		Title:       r.Title,
		Category:    NilIfBlank(r.Category),
		PublishedOn: publishedOn,
		Body:        r.Body,
	}, nil
}

// UpdateArticleRequest - PUT /articles/:id
// Every field is optional; author/authorUrl edit the linked author.
type UpdateArticleRequest struct {
	Author      *string `json:"author"`
	AuthorURL   *string `json:"authorUrl"`
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	PublishedOn *string `json:"publishedOn"`
	Body        *string `json:"body"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Author, notBlank, validation.RuneLength(0, authorModel.MaxNameLength)),
		validation.Field(&r.AuthorURL, validation.RuneLength(0, authorModel.MaxURLLength)),
		validation.Field(&r.Title, notBlank, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&r.Category, validation.RuneLength(0, MaxCategoryLength)),
		validation.Field(&r.PublishedOn, validation.Date(DateLayout).Error("must be a YYYY-MM-DD date")),
		validation.Field(&r.Body, notBlank),
	)
}

// Patches splits the request into the article columns and the author
// columns it touches.
func (r UpdateArticleRequest) Patches() (ArticlePatch, authorModel.AuthorPatch, error) {
	publishedOn, err := ParseDate(r.PublishedOn)
	if err != nil {
		return ArticlePatch{}, authorModel.AuthorPatch{}, err
	}

	ap := ArticlePatch{
		Title:       r.Title,
		Category:    NilIfBlank(r.Category),
		PublishedOn: publishedOn,
		Body:        r.Body,
	}
	authorPatch := authorModel.AuthorPatch{Name: r.Author, URL: r.AuthorURL}
	if err := authorPatch.Normalize(); err != nil {
		return ArticlePatch{}, authorModel.AuthorPatch{}, err
	}
	return ap, authorPatch, nil
}

// CreateArticleResponse is returned by POST /articles
type CreateArticleResponse struct {
	ArticleID int64 `json:"article_id"`
	AuthorID  int64 `json:"author_id"`
}

// NilIfBlank maps a missing or blank optional column to nil (NULL on
// insert, "leave as is" in a patch)
func NilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
