package model

import "time"

// PostMeta is the YAML front-matter block at the top of every post file.
// The file on disk is the system of record; nothing is cached between
// requests.
type PostMeta struct {
	Title           string    `yaml:"title" json:"title"`
	Date            time.Time `yaml:"date" json:"date"`
	UpdatedAt       time.Time `yaml:"updatedAt,omitempty" json:"updated_at,omitempty"`
	Category        string    `yaml:"category,omitempty" json:"category,omitempty"`
	Tags            []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	Author          string    `yaml:"author,omitempty" json:"author,omitempty"`
	Excerpt         string    `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	Image           string    `yaml:"image,omitempty" json:"image,omitempty"`
	ImageAlt        string    `yaml:"imageAlt,omitempty" json:"image_alt,omitempty"`
	ReadTime        string    `yaml:"readTime,omitempty" json:"read_time,omitempty"`
	Featured        bool      `yaml:"featured" json:"featured"`
	Published       bool      `yaml:"published" json:"published"`
	MetaDescription string    `yaml:"metaDescription,omitempty" json:"meta_description,omitempty"`
}

// Post is a single markdown file under the content directory, addressed by
// its slug (filename minus extension).
type Post struct {
	Slug    string   `json:"slug"`
	Meta    PostMeta `json:"meta"`
	Content string   `json:"content"`
}
