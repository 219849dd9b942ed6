package items

// Kind is the closed set of item variants.
type Kind int

const (
	// Ignore produces no output. The file stays loadable as a template by name.
	Ignore Kind = iota
	// Static is copied byte for byte.
	Static
	// Template is rendered with the shared context.
	Template
	// Post is Markdown with front matter, rendered through the post template.
	Post
	// StructuredPage is a data document naming the template that renders it.
	StructuredPage
)

var kindNames = [...]string{
	Ignore:         "ignore",
	Static:         "static",
	Template:       "template",
	Post:           "post",
	StructuredPage: "structured-page",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
