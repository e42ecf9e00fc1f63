package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSectionVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Section
	}{
		{
			name: "heading with cta",
			raw:  `{"id": 7, "type": "heading", "title": "Hello", "cta_text": "Go", "cta_url": "/x", "theme": "dark"}`,
			want: &HeadingSection{
				Meta:         Meta{ID: "7"},
				CallToAction: CallToAction{Text: "Go", URL: "/x"},
				Title:        "Hello",
				Theme:        ThemeDark,
			},
		},
		{
			name: "paragraph with collections",
			raw: `{"type": "paragraph", "content": "Body", "theme": "neon",
				"tiles": [{"id": 1, "title": "Fast", "body": "Very"}],
				"specs": [{"label": "RAM", "value": "8GB"}],
				"faqs": [{"id": "q1", "question": "Why?", "answer": "Because"}]}`,
			want: &ParagraphSection{
				Content: "Body",
				Theme:   ThemeDefault,
				Tiles:   []Tile{{ID: "1", Title: "Fast", Body: "Very"}},
				Specs:   []Spec{{Label: "RAM", Value: "8GB"}},
				FAQs:    []FAQ{{ID: "q1", Question: "Why?", Answer: "Because"}},
			},
		},
		{
			name: "gallery reads extra.images",
			raw:  `{"type": "gallery", "extra": {"images": ["a.jpg", "b.jpg", "c.jpg"]}}`,
			want: &GallerySection{Extra: GalleryExtra{Images: []string{"a.jpg", "b.jpg", "c.jpg"}}},
		},
		{
			name: "media tabs",
			raw:  `{"type": "media_tabs", "media_tabs": [{"title": "One", "image": "1.png"}, {"title": "Two", "image": "2.png", "subtitle": "second"}]}`,
			want: &MediaTabsSection{Tabs: []MediaTab{
				{Title: "One", Image: "1.png"},
				{Title: "Two", Image: "2.png", Subtitle: "second"},
			}},
		},
		{
			name: "features",
			raw:  `{"type": "features", "content": "Highlights", "features": [{"title": "Offline", "style": "portrait", "modal_content": "<p>x</p>"}]}`,
			want: &FeaturesSection{
				Content:  "Highlights",
				Features: []Feature{{Title: "Offline", Style: "portrait", ModalContent: "<p>x</p>"}},
			},
		},
		{
			name: "image without image field",
			raw:  `{"type": "image", "caption": "Nothing here"}`,
			want: &ImageSection{Caption: "Nothing here"},
		},
		{
			name: "video",
			raw:  `{"type": "video", "video": "https://cdn.example.com/v.mp4"}`,
			want: &VideoSection{Video: "https://cdn.example.com/v.mp4"},
		},
		{
			name: "quote",
			raw:  `{"type": "quote", "content": "Less is more", "theme": "accent"}`,
			want: &QuoteSection{Content: "Less is more", Theme: ThemeAccent},
		},
		{
			name: "list",
			raw:  `{"type": "list", "title": "FAQ", "faqs": [{"question": "a", "answer": "b"}]}`,
			want: &ListSection{Title: "FAQ", FAQs: []FAQ{{Question: "a", Answer: "b"}}},
		},
		{
			name: "metrics",
			raw:  `{"type": "metrics", "content": "Impact", "metrics": [{"label": "Users", "value": "10k", "description": "monthly"}]}`,
			want: &MetricsSection{Content: "Impact", Metrics: []Metric{{Label: "Users", Value: "10k", Description: "monthly"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSection(json.RawMessage(tt.raw))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeSection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeSectionUnknownAndMalformed(t *testing.T) {
	unknown := DecodeSection(json.RawMessage(`{"type": "carousel3d", "title": "Future"}`))
	u, ok := unknown.(*UnknownSection)
	require.True(t, ok)
	assert.Equal(t, "carousel3d", u.Kind)
	assert.NoError(t, Problem(unknown))

	malformed := DecodeSection(json.RawMessage(`{"type": "metrics", "metrics": "lots"}`))
	m, ok := malformed.(*UnknownSection)
	require.True(t, ok)
	assert.Equal(t, "metrics", m.Kind)
	assert.Error(t, Problem(malformed))

	missing := DecodeSection(json.RawMessage(`{"title": "No type"}`))
	assert.ErrorIs(t, Problem(missing), errMissingType)

	garbage := DecodeSection(json.RawMessage(`[1, 2]`))
	assert.Error(t, Problem(garbage))
}

func TestProjectDecodeKeepsOrderAndSkipsBadSections(t *testing.T) {
	raw := `{
		"title": "Kirana Connect",
		"slug": "kirana-connect",
		"short_description": "Groceries",
		"hero_image": "hero.jpg",
		"sections": [
			{"type": "quote", "content": "first"},
			{"type": "metrics", "metrics": 42},
			{"type": "hologram"},
			{"type": "video", "video": "v.mp4"}
		]
	}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NoError(t, p.Validate())
	require.Len(t, p.Sections, 4)

	types := make([]SectionType, len(p.Sections))
	for i, s := range p.Sections {
		types[i] = s.Type()
	}
	assert.Equal(t, []SectionType{SectionQuote, SectionMetrics, "hologram", SectionVideo}, types)
	assert.IsType(t, &UnknownSection{}, p.Sections[1])
	assert.IsType(t, &VideoSection{}, p.Sections[3])
}

func TestProjectEncodeRoundTrip(t *testing.T) {
	p := Project{
		ProjectSummary: ProjectSummary{ID: "3", Title: "WOFA", Slug: "wofa"},
		Client:         "WOFA",
		Sections: []Section{
			&HeadingSection{Title: "Hello", CallToAction: CallToAction{Text: "Go", URL: "/x"}},
			&GallerySection{Extra: GalleryExtra{Images: []string{"a.jpg"}}},
			&UnknownSection{Kind: "later", Raw: json.RawMessage(`{"type":"later","x":1}`)},
		},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Project
	require.NoError(t, json.Unmarshal(data, &back))

	opts := cmpopts.IgnoreFields(UnknownSection{}, "Raw")
	if diff := cmp.Diff(p, back, opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptySectionEncodes(t *testing.T) {
	raw, err := EncodeSection(&VideoSection{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"video"}`, string(raw))
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeAccent, ParseTheme(" Accent "))
	assert.Equal(t, ThemeDefault, ParseTheme("default"))
	assert.Equal(t, ThemeDefault, ParseTheme("sepia"))
	assert.Equal(t, ThemeDefault, ParseTheme(""))
}

func TestCallToActionVisible(t *testing.T) {
	assert.True(t, CallToAction{Text: "Go", URL: "/x"}.Visible())
	assert.False(t, CallToAction{Text: "Go"}.Visible())
	assert.False(t, CallToAction{URL: "/x"}.Visible())
}
