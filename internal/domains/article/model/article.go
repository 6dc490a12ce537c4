package model

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the wire format of publishedOn
const DateLayout = "2006-01-02"

const (
	MaxTitleLength    = 255
	MaxCategoryLength = 20
)

// MaxArticleID is the largest value article_id (SERIAL, int4) can hold.
// Bigger ids name rows that cannot exist.
const MaxArticleID = math.MaxInt32

// Article represents a row of the articles table
type Article struct {
	ID          int64
	AuthorID    int64
	Title       string
	Category    *string
	PublishedOn *time.Time
	Body        string
}

// Validate runs the checks that must hold before any insert
func (a *Article) Validate() error {
	if err := a.ValidateContent(); err != nil {
		return err
	}
	if a.AuthorID <= 0 {
		return ErrUnknownAuthor
	}
	return nil
}

// ValidateContent checks the NOT NULL text columns only
func (a *Article) ValidateContent() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrInvalidTitle
	}
	if strings.TrimSpace(a.Body) == "" {
		return ErrInvalidBody
	}
	return nil
}

// ArticlePatch holds the article columns an update replaces.
// Nil means "keep the stored value".
type ArticlePatch struct {
	Title       *string
	Category    *string
	PublishedOn *time.Time
	Body        *string
}

// ArticleView is one row of the catalog listing: an article joined with
// its author.
type ArticleView struct {
	ArticleID   int64   `json:"article_id"`
	AuthorID    int64   `json:"author_id"`
	Title       string  `json:"title"`
	Category    *string `json:"category"`
	Author      string  `json:"author"`
	AuthorURL   *string `json:"authorUrl"`
	PublishedOn *string `json:"publishedOn"`
	Body        string  `json:"body"`
}

// FormatDate renders a DATE column for the API, nil stays nil
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate parses an optional YYYY-MM-DD value
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, ErrInvalidPublishedOn.Wrap(err)
	}
	return &t, nil
}
