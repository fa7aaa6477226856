package content

// PageType identifies how a page is rendered.
type PageType string

const (
	PageAbout       PageType = "about"
	PagePublication PageType = "publication"
	PageText        PageType = "text"
	PageCard        PageType = "card"
)

// Valid reports whether t is a known page type.
func (t PageType) Valid() bool {
	switch t {
	case PageAbout, PagePublication, PageText, PageCard:
		return true
	}
	return false
}

// BasePage holds the keys shared by every page config.
type BasePage struct {
	Type        PageType `toml:"type" json:"type"`
	Title       string   `toml:"title" json:"title"`
	Description string   `toml:"description" json:"description,omitempty"`
}

// PublicationPage lists publications from a .bib or .toml source.
type PublicationPage struct {
	BasePage
	Source string `toml:"source" json:"source"`
}

// TextPage renders a Markdown source with an optional PDF attachment.
type TextPage struct {
	BasePage
	Source string `toml:"source" json:"source"`
	PDF    string `toml:"pdf" json:"pdf,omitempty"`
}

// CardItem is one card on a card page.
type CardItem struct {
	Title    string   `toml:"title" json:"title"`
	Subtitle string   `toml:"subtitle" json:"subtitle,omitempty"`
	Date     string   `toml:"date" json:"date,omitempty"`
	Content  string   `toml:"content" json:"content,omitempty"`
	Tags     []string `toml:"tags" json:"tags,omitempty"`
	Link     string   `toml:"link" json:"link,omitempty"`
	Image    string   `toml:"image" json:"image,omitempty"`
	Category string   `toml:"category" json:"category,omitempty"`
}

// CardPage shows a grid of cards, optionally grouped by category.
type CardPage struct {
	BasePage
	Items      []CardItem `toml:"items" json:"items"`
	Categories []string   `toml:"categories" json:"categories,omitempty"`
}

// PageType returns the type of page config <name>.toml.
// Returns false when the file is unreadable or has no known type.
func (l *Loader) PageType(name string) (PageType, bool) {
	var base BasePage
	if !l.DecodeTOML(name+".toml", &base) {
		return "", false
	}
	return base.Type, base.Type.Valid()
}

// AboutPage loads an about page config.
func (l *Loader) AboutPage(name string) (*BasePage, bool) {
	var page BasePage
	if !l.decodePage(name, PageAbout, &page, &page) {
		return nil, false
	}
	return &page, true
}

// PublicationPage loads a publication page config.
func (l *Loader) PublicationPage(name string) (*PublicationPage, bool) {
	var page PublicationPage
	if !l.decodePage(name, PagePublication, &page, &page.BasePage) {
		return nil, false
	}
	return &page, true
}

// TextPage loads a text page config.
func (l *Loader) TextPage(name string) (*TextPage, bool) {
	var page TextPage
	if !l.decodePage(name, PageText, &page, &page.BasePage) {
		return nil, false
	}
	return &page, true
}

// CardPage loads a card page config.
func (l *Loader) CardPage(name string) (*CardPage, bool) {
	var page CardPage
	if !l.decodePage(name, PageCard, &page, &page.BasePage) {
		return nil, false
	}
	if page.Items == nil {
		page.Items = []CardItem{}
	}
	return &page, true
}

// decodePage decodes <name>.toml into v and checks its type.
func (l *Loader) decodePage(name string, want PageType, v any, base *BasePage) bool {
	if !l.DecodeTOML(name+".toml", v) {
		return false
	}
	if base.Type != want {
		l.logger().Error("unexpected page type", "page", name, "type", base.Type, "want", want)
		return false
	}
	return true
}
