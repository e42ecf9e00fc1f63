package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ProjectSummary is the subset of a project shown in listings
type ProjectSummary struct {
	ID               ItemID `json:"id,omitempty"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	ShortDescription string `json:"short_description"`
	HeroImage        string `json:"hero_image,omitempty"`
	Industry         string `json:"industry,omitempty"`
	Date             string `json:"date,omitempty"`
	WebsiteURL       string `json:"website_url,omitempty"`
}

// DisplayDate formats an ISO date as M/D/YY and leaves anything else as is
func (p ProjectSummary) DisplayDate() string {
	if t, err := time.Parse("2006-01-02", p.Date); err == nil {
		return t.Format("1/2/06")
	}
	return p.Date
}

// DisplayIndustry falls back to a generic label
func (p ProjectSummary) DisplayIndustry() string {
	if p.Industry != "" {
		return p.Industry
	}
	return "Mobile App"
}

// Project represents a portfolio project with its page sections
type Project struct {
	ProjectSummary
	VideoURL string    `json:"video_url,omitempty"`
	Logo     string    `json:"logo,omitempty"`
	Client   string    `json:"client,omitempty"`
	Sections []Section `json:"-"`
}

// projectWire is the JSON shape of a project with undecoded sections
type projectWire struct {
	ProjectSummary
	VideoURL string            `json:"video_url,omitempty"`
	Logo     string            `json:"logo,omitempty"`
	Client   string            `json:"client,omitempty"`
	Sections []json.RawMessage `json:"sections"`
}

// UnmarshalJSON decodes the project and converts each section into its
// typed variant. Bad sections never fail the project.
func (p *Project) UnmarshalJSON(data []byte) error {
	var w projectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	p.ProjectSummary = w.ProjectSummary
	p.VideoURL = w.VideoURL
	p.Logo = w.Logo
	p.Client = w.Client
	p.Sections = make([]Section, 0, len(w.Sections))
	for _, raw := range w.Sections {
		p.Sections = append(p.Sections, DecodeSection(raw))
	}
	return nil
}

// MarshalJSON writes the project in the backend wire format
func (p Project) MarshalJSON() ([]byte, error) {
	w := projectWire{
		ProjectSummary: p.ProjectSummary,
		VideoURL:       p.VideoURL,
		Logo:           p.Logo,
		Client:         p.Client,
		Sections:       make([]json.RawMessage, 0, len(p.Sections)),
	}
	for i, s := range p.Sections {
		raw, err := EncodeSection(s)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		w.Sections = append(w.Sections, raw)
	}
	return json.Marshal(w)
}

// Validate checks the only field a project cannot do without
func (p *Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project %q has no title", p.Slug)
	}
	return nil
}

// ImageURLs lists every image the project page may display, in page order.
// Duplicates and blanks are kept out.
func (p *Project) ImageURLs() []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(srcs ...string) {
		for _, s := range srcs {
			if s != "" && !seen[s] {
				seen[s] = true
				urls = append(urls, s)
			}
		}
	}

	add(p.HeroImage, p.Logo)
	for _, s := range p.Sections {
		switch v := s.(type) {
		case *ParagraphSection:
			for _, t := range v.Tiles {
				add(t.IconImage)
			}
		case *MediaTabsSection:
			for _, t := range v.Tabs {
				add(t.Image)
			}
		case *FeaturesSection:
			for _, f := range v.Features {
				add(f.IconImage, f.BackgroundImage, f.ModalImage)
			}
		case *ImageSection:
			add(v.Image)
		case *GallerySection:
			add(v.Images()...)
		}
	}
	return urls
}
