package model

// Marketing page data, decoded from YAML files under the site content
// directory. Read-only from the API's point of view.

type ServiceOffering struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Summary     string   `yaml:"summary" json:"summary"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Icon        string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Highlights  []string `yaml:"highlights,omitempty" json:"highlights,omitempty"`
}

type PortfolioItem struct {
	Slug     string   `yaml:"slug" json:"slug"`
	Title    string   `yaml:"title" json:"title"`
	Client   string   `yaml:"client,omitempty" json:"client,omitempty"`
	Summary  string   `yaml:"summary" json:"summary"`
	Image    string   `yaml:"image,omitempty" json:"image,omitempty"`
	ImageAlt string   `yaml:"imageAlt,omitempty" json:"image_alt,omitempty"`
	Tags     []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	URL      string   `yaml:"url,omitempty" json:"url,omitempty"`
	Featured bool     `yaml:"featured" json:"featured"`
}

type Testimonial struct {
	Author  string `yaml:"author" json:"author"`
	Role    string `yaml:"role,omitempty" json:"role,omitempty"`
	Company string `yaml:"company,omitempty" json:"company,omitempty"`
	Quote   string `yaml:"quote" json:"quote"`
	Avatar  string `yaml:"avatar,omitempty" json:"avatar,omitempty"`
}

type FAQEntry struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}
