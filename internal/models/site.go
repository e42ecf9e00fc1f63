package models

// SiteContent is the editorial copy of the landing page, navigation and
// footer. It is loaded from a YAML file rather than the backend.
type SiteContent struct {
	Brand    string    `yaml:"brand" json:"brand"`
	Nav      []Link    `yaml:"nav" json:"nav"`
	Hero     Hero      `yaml:"hero" json:"hero"`
	Toolkit  []Tool    `yaml:"toolkit" json:"toolkit"`
	Services []Service `yaml:"services" json:"services"`
	Career   []Role    `yaml:"career" json:"career"`
	FAQs     []FAQ     `yaml:"faqs" json:"faqs"`
	Footer   Footer    `yaml:"footer" json:"footer"`
}

// Link is a labelled navigation target.
type Link struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
}

type Hero struct {
	Greeting    string   `yaml:"greeting" json:"greeting"`
	Name        string   `yaml:"name" json:"name"`
	Role        string   `yaml:"role" json:"role"`
	Location    string   `yaml:"location" json:"location"`
	Tagline     string   `yaml:"tagline" json:"tagline"`
	Period      string   `yaml:"period" json:"period"`
	Description string   `yaml:"description" json:"description"`
	CTAText     string   `yaml:"cta_text" json:"cta_text"`
	CTAURL      string   `yaml:"cta_url" json:"cta_url"`
	Stats       []Stat   `yaml:"stats" json:"stats"`
	Stack       []string `yaml:"stack" json:"stack"`
}

type Stat struct {
	Number string `yaml:"number" json:"number"`
	Label  string `yaml:"label" json:"label"`
}

// Tool is one toolkit entry with a proficiency percentage.
type Tool struct {
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
	Percent     int    `yaml:"percent" json:"percent"`
}

type Service struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
}

// Role is one entry of the career timeline.
type Role struct {
	Year        string `yaml:"year" json:"year"`
	Title       string `yaml:"title" json:"title"`
	Company     string `yaml:"company" json:"company"`
	Description string `yaml:"description" json:"description"`
}

type Footer struct {
	Headline  string `yaml:"headline" json:"headline"`
	Email     string `yaml:"email" json:"email"`
	Links     []Link `yaml:"links" json:"links"`
	Socials   []Link `yaml:"socials" json:"socials"`
	Copyright string `yaml:"copyright" json:"copyright"`
}

// Percentage clamps Percent to [0, 100].
func (t Tool) Percentage() int {
	return min(max(t.Percent, 0), 100)
}

// DefaultSiteContent is used when no site content file is configured.
func DefaultSiteContent() *SiteContent {
	return &SiteContent{
		Brand: "build with saransh",
		Nav: []Link{
			{Name: "Work", Href: "/projects"},
			{Name: "Services", Href: "/#services"},
			{Name: "Blogs", Href: "/blogs"},
			{Name: "About", Href: "/#about"},
		},
		Hero: Hero{
			Greeting: "Hi! I'm",
			Name:     "Saransh",
			Role:     "Mobile Developer",
			Tagline:  "turning your ideas into pixel-perfect realities",
			CTAText:  "See what I can do",
			CTAURL:   "#work",
		},
		Footer: Footer{
			Headline: "Let's build something together.",
		},
	}
}
