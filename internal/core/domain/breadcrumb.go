package domain

// BreadcrumbItem is one hop in a navigation trail. Positions start at 1
// and increase strictly within a trail.
type BreadcrumbItem struct {
	// Label is the display text.
	Label string

	// Href is the site path of the hop.
	Href string

	// Position is the 1-based position within the trail.
	Position int
}

// homeLabel is the label of the trail's first hop.
const homeLabel = "Home"

// BreadcrumbsFor builds the navigation trail for a record's detail page.
// A detail page always yields exactly three hops: Home, the entity type's
// hub, and the record itself. The three-hop depth is a structural contract
// guaranteed by construction: every published detail page is reachable
// from Home in at most three hops.
func BreadcrumbsFor(entityType EntityType, title, slug string) []BreadcrumbItem {
	return []BreadcrumbItem{
		{Label: homeLabel, Href: "/", Position: 1},
		{Label: entityType.HubLabel(), Href: entityType.SectionPath(), Position: 2},
		{Label: title, Href: entityType.SectionPath() + slug, Position: 3},
	}
}
