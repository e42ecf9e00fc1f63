package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Theme selects the background/foreground treatment of a section.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeDark    Theme = "dark"
	ThemeAccent  Theme = "accent"
)

// ParseTheme maps any unrecognised value to ThemeDefault.
func ParseTheme(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark
	case ThemeAccent:
		return ThemeAccent
	}
	return ThemeDefault
}

// UnmarshalJSON normalises the theme, tolerating null and non-string values.
func (t *Theme) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ThemeDefault
		return nil
	}
	*t = ParseTheme(s)
	return nil
}

// ItemID is a backend identifier that may arrive as a number or a string.
type ItemID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ItemID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as numbers.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Tile is a small card in a paragraph section.
type Tile struct {
	ID         ItemID `json:"id,omitempty"`
	Order      int    `json:"order,omitempty"`
	IconText   string `json:"icon_text,omitempty"`
	IconImage  string `json:"icon_image,omitempty"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	ActionText string `json:"action_text,omitempty"`
	ActionURL  string `json:"action_url,omitempty"`
}

func (t Tile) Key() string { return keyOr(t.ID, t.Title) }

// HasAction reports whether the tile link has both text and target.
func (t Tile) HasAction() bool {
	return t.ActionText != "" && t.ActionURL != ""
}

// Spec is a label/value pair shown in a grid.
type Spec struct {
	ID    ItemID `json:"id,omitempty"`
	Order int    `json:"order,omitempty"`
	Label string `json:"label"`
	Value string `json:"value"`
}

func (s Spec) Key() string { return keyOr(s.ID, s.Label) }

// FAQ is one accordion entry.
type FAQ struct {
	ID       ItemID `json:"id,omitempty"`
	Order    int    `json:"order,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f FAQ) Key() string { return keyOr(f.ID, f.Question) }

// Metric is one figure in a metrics section.
type Metric struct {
	ID          ItemID `json:"id,omitempty"`
	Order       int    `json:"order,omitempty"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func (m Metric) Key() string { return keyOr(m.ID, m.Label) }

// MediaTab is one selectable entry of a media_tabs section.
type MediaTab struct {
	ID          ItemID `json:"id,omitempty"`
	Order       int    `json:"order,omitempty"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
	VideoURL    string `json:"video_url,omitempty"`
}

func (t MediaTab) Key() string { return keyOr(t.ID, t.Title) }

// Caption is the subtitle, or the description when no subtitle is set.
func (t MediaTab) Caption() string {
	if t.Subtitle != "" {
		return t.Subtitle
	}
	return t.Description
}

// Feature is one card of a features carousel, with optional modal content.
type Feature struct {
	ID               ItemID `json:"id,omitempty"`
	Order            int    `json:"order,omitempty"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	IconText         string `json:"icon_text,omitempty"`
	IconImage        string `json:"icon_image,omitempty"`
	BackgroundImage  string `json:"background_image,omitempty"`
	BackgroundColor  string `json:"background_color,omitempty"`
	TextColor        string `json:"text_color,omitempty"`
	Style            string `json:"style,omitempty"`
	Category         string `json:"category,omitempty"`
	ModalTitle       string `json:"modal_title,omitempty"`
	ModalDescription string `json:"modal_description,omitempty"`
	ModalImage       string `json:"modal_image,omitempty"`
	ModalVideoURL    string `json:"modal_video_url,omitempty"`
	ModalContent     string `json:"modal_content,omitempty"`
}

func (f Feature) Key() string { return keyOr(f.ID, f.Title) }

// Portrait reports whether the card uses the tall 3:5 layout.
func (f Feature) Portrait() bool {
	return f.Style == "portrait"
}

// DisplayModalTitle falls back to the card title.
func (f Feature) DisplayModalTitle() string {
	if f.ModalTitle != "" {
		return f.ModalTitle
	}
	return f.Title
}

func keyOr(id ItemID, fallback string) string {
	if id != "" {
		return string(id)
	}
	return fallback
}
