package driven

// LabelSource supplies editorial label overrides for normalized category
// slugs. Overrides are maintained outside this module and take precedence
// over the built-in label table.
type LabelSource interface {
	// Label returns the override label for a slug, if one exists.
	Label(slug string) (string, bool)
}
