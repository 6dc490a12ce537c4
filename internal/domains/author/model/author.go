package model

import (
	"strings"
	"unicode/utf8"
)

// Constants for validation, mirror the authors table column sizes
const (
	MaxNameLength = 255
	MaxURLLength  = 255
)

// Author represents a row of the authors table.
// Name is globally unique, compared case-sensitively.
type Author struct {
	ID   int64   `json:"author_id"`
	Name string  `json:"author"`
	URL  *string `json:"authorUrl,omitempty"`
}

// AuthorPatch carries the author fields an article update may also change.
// Nil fields are left untouched.
type AuthorPatch struct {
	Name *string
	URL  *string
}

func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil && p.URL == nil
}

// NewAuthor trims the display name and validates both fields.
// An empty URL is stored as NULL.
func NewAuthor(name string, url *string) (*Author, error) {
	a := &Author{
		Name: strings.TrimSpace(name),
		URL:  normalizeURL(url),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate validates the Author entity
func (a *Author) Validate() error {
	if err := validateName(a.Name); err != nil {
		return err
	}
	return validateURL(a.URL)
}

// Normalize trims and validates the patch in place
func (p *AuthorPatch) Normalize() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validateName(name); err != nil {
			return err
		}
		p.Name = &name
	}
	if p.URL != nil {
		// an explicit empty URL in a patch means "leave as is"
		p.URL = normalizeURL(p.URL)
	}
	return validateURL(p.URL)
}

func validateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateURL(url *string) error {
	if url != nil && utf8.RuneCountInString(*url) > MaxURLLength {
		return ErrURLTooLong
	}
	return nil
}

func normalizeURL(url *string) *string {
	if url == nil {
		return nil
	}
	u := strings.TrimSpace(*url)
	if u == "" {
		return nil
	}
	return &u
}
