package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	articleModel "article-catalog/internal/domains/article/model"
)

//go:embed data/hacker_ipsum.json
var bundledDataset []byte

// Record is one entry of the seed dataset: an article plus its author
type Record struct {
	Author      string  `json:"author"`
	AuthorURL   *string `json:"authorUrl"`
	Title       string  `json:"title"`
	Category    *string `json:"category"`
	PublishedOn *string `json:"publishedOn"`
	Body        string  `json:"body"`
}

// Article converts the record's article columns.
// A malformed date is reported so the loader can skip the record.
func (r Record) Article() (*articleModel.Article, error) {
	publishedOn, err := articleModel.ParseDate(r.PublishedOn)
	if err != nil {
		return nil, err
	}
	return &articleModel.Article{
		Title:       r.Title,
		Category:    articleModel.NilIfBlank(r.Category),
		PublishedOn: publishedOn,
		Body:        r.Body,
	}, nil
}

// LoadDataset reads the dataset at path, or the bundled one when path is empty
func LoadDataset(path string) ([]Record, error) {
	data := bundledDataset
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = b
	}
	return ParseDataset(data)
}

func ParseDataset(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed dataset: %w", err)
	}
	return records, nil
}
