package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SectionType is the discriminator of the section tagged union.
type SectionType string

const (
	SectionHeading   SectionType = "heading"
	SectionParagraph SectionType = "paragraph"
	SectionMetrics   SectionType = "metrics"
	SectionMediaTabs SectionType = "media_tabs"
	SectionFeatures  SectionType = "features"
	SectionImage     SectionType = "image"
	SectionGallery   SectionType = "gallery"
	SectionVideo     SectionType = "video"
	SectionQuote     SectionType = "quote"
	SectionList      SectionType = "list"
)

var errMissingType = errors.New("section has no type")

// Section is one renderable block of a project page. The set of
// implementations is closed; anything the decoder does not recognise
// becomes an UnknownSection.
type Section interface {
	Type() SectionType
	section()
}

// Meta holds the bookkeeping fields every section carries.
type Meta struct {
	ID    ItemID `json:"id,omitempty"`
	Order int    `json:"order,omitempty"`
}

// CallToAction is an optional link attached to a section.
type CallToAction struct {
	Text string `json:"cta_text,omitempty"`
	URL  string `json:"cta_url,omitempty"`
}

// Visible reports whether both the text and the target are present.
func (c CallToAction) Visible() bool {
	return c.Text != "" && c.URL != ""
}

type HeadingSection struct {
	Meta
	CallToAction
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Theme    Theme  `json:"theme,omitempty"`
}

type ParagraphSection struct {
	Meta
	CallToAction
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Content  string `json:"content,omitempty"`
	Tiles    []Tile `json:"tiles,omitempty"`
	Specs    []Spec `json:"specs,omitempty"`
	FAQs     []FAQ  `json:"faqs,omitempty"`
	Theme    Theme  `json:"theme,omitempty"`
}

// MetricsSection uses Content as its heading.
type MetricsSection struct {
	Meta
	Content string   `json:"content,omitempty"`
	Metrics []Metric `json:"metrics,omitempty"`
}

type MediaTabsSection struct {
	Meta
	Tabs []MediaTab `json:"media_tabs,omitempty"`
}

// FeaturesSection uses Content as its heading.
type FeaturesSection struct {
	Meta
	Content  string    `json:"content,omitempty"`
	Features []Feature `json:"features,omitempty"`
}

type ImageSection struct {
	Meta
	Image   string `json:"image,omitempty"`
	Caption string `json:"caption,omitempty"`
	Theme   Theme  `json:"theme,omitempty"`
}

// GalleryExtra mirrors the free-form "extra" object of a gallery section.
type GalleryExtra struct {
	Images []string `json:"images,omitempty"`
}

type GallerySection struct {
	Meta
	Extra GalleryExtra `json:"extra"`
	Theme Theme        `json:"theme,omitempty"`
}

// Images returns the gallery images in publisher order.
func (s *GallerySection) Images() []string {
	return s.Extra.Images
}

type VideoSection struct {
	Meta
	Video string `json:"video,omitempty"`
}

type QuoteSection struct {
	Meta
	Content string `json:"content,omitempty"`
	Theme   Theme  `json:"theme,omitempty"`
}

type ListSection struct {
	Meta
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	FAQs    []FAQ  `json:"faqs,omitempty"`
}

// UnknownSection stands in for a section with an unrecognised type or a
// payload that could not be decoded for its type. It never renders.
type UnknownSection struct {
	Kind string
	Raw  json.RawMessage
	Err  error
}

func (*HeadingSection) Type() SectionType   { return SectionHeading }
func (*ParagraphSection) Type() SectionType { return SectionParagraph }
func (*MetricsSection) Type() SectionType   { return SectionMetrics }
func (*MediaTabsSection) Type() SectionType { return SectionMediaTabs }
func (*FeaturesSection) Type() SectionType  { return SectionFeatures }
func (*ImageSection) Type() SectionType     { return SectionImage }
func (*GallerySection) Type() SectionType   { return SectionGallery }
func (*VideoSection) Type() SectionType     { return SectionVideo }
func (*QuoteSection) Type() SectionType     { return SectionQuote }
func (*ListSection) Type() SectionType      { return SectionList }
func (s *UnknownSection) Type() SectionType { return SectionType(s.Kind) }

func (*HeadingSection) section()   {}
func (*ParagraphSection) section() {}
func (*MetricsSection) section()   {}
func (*MediaTabsSection) section() {}
func (*FeaturesSection) section()  {}
func (*ImageSection) section()     {}
func (*GallerySection) section()   {}
func (*VideoSection) section()     {}
func (*QuoteSection) section()     {}
func (*ListSection) section()      {}
func (*UnknownSection) section()   {}

// newSection returns an empty value for a known type, or nil.
func newSection(t SectionType) Section {
	switch t {
	case SectionHeading:
		return &HeadingSection{}
	case SectionParagraph:
		return &ParagraphSection{}
	case SectionMetrics:
		return &MetricsSection{}
	case SectionMediaTabs:
		return &MediaTabsSection{}
	case SectionFeatures:
		return &FeaturesSection{}
	case SectionImage:
		return &ImageSection{}
	case SectionGallery:
		return &GallerySection{}
	case SectionVideo:
		return &VideoSection{}
	case SectionQuote:
		return &QuoteSection{}
	case SectionList:
		return &ListSection{}
	}
	return nil
}

// DecodeSection converts one raw section object into its typed variant.
// It never fails: unrecognised types and payloads that do not fit their
// type come back as *UnknownSection with Err describing the problem.
func DecodeSection(raw json.RawMessage) Section {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return &UnknownSection{Raw: raw, Err: fmt.Errorf("decoding section header: %w", err)}
	}
	if head.Type == "" {
		return &UnknownSection{Raw: raw, Err: errMissingType}
	}

	s := newSection(SectionType(head.Type))
	if s == nil {
		return &UnknownSection{Kind: head.Type, Raw: raw}
	}
	if err := json.Unmarshal(raw, s); err != nil {
		return &UnknownSection{
			Kind: head.Type,
			Raw:  raw,
			Err:  fmt.Errorf("decoding %s section: %w", head.Type, err),
		}
	}
	return s
}

// EncodeSection marshals a section back to its wire form, including the
// type discriminator. Unknown sections are written back verbatim.
func EncodeSection(s Section) (json.RawMessage, error) {
	if u, ok := s.(*UnknownSection); ok {
		if len(u.Raw) == 0 {
			return json.RawMessage("null"), nil
		}
		return u.Raw, nil
	}

	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding %s section: %w", s.Type(), err)
	}
	tag, err := json.Marshal(string(s.Type()))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Problem returns the decode error of an unknown section, if any. An
// unrecognised but well-formed section has no problem.
func Problem(s Section) error {
	if u, ok := s.(*UnknownSection); ok {
		return u.Err
	}
	return nil
}
