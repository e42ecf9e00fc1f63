package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Blog is a journal post. Content is pre-rendered HTML from the backend.
type Blog struct {
	ID                ItemID    `json:"id,omitempty"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Excerpt           string    `json:"excerpt,omitempty"`
	Content           string    `json:"content,omitempty"`
	CoverImage        string    `json:"cover_image,omitempty"`
	Tags              string    `json:"tags,omitempty"`
	EstimatedReadTime string    `json:"estimated_read_time,omitempty"`
	CreatedAt         Timestamp `json:"created_at"`
}

// TagList splits the comma separated tags, dropping blanks
func (b Blog) TagList() []string {
	var tags []string
	for _, t := range strings.Split(b.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FirstTag returns the first tag or ""
func (b Blog) FirstTag() string {
	if tags := b.TagList(); len(tags) > 0 {
		return tags[0]
	}
	return ""
}

// Timestamp is a time that tolerates empty strings and null.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses RFC 3339 timestamps, leaving blanks as zero
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes zero timestamps as null
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// LongDate formats as "January 2, 2006", or "" when unset
func (t Timestamp) LongDate() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
