package domain

import "time"

// EntityType identifies one of the six content categories in the catalog.
// The set is closed: the quality gate, the relationship resolver and the
// breadcrumb builder all switch exhaustively over it.
type EntityType string

const (
	// EntityPlace is a geographic location record.
	EntityPlace EntityType = "place"
	// EntitySituation is a life-situation record.
	EntitySituation EntityType = "situation"
	// EntityProfession is an occupation record.
	EntityProfession EntityType = "profession"
	// EntityPrayerPoint is a prayer-topic record.
	EntityPrayerPoint EntityType = "prayer-point"
	// EntityName is a named-person record.
	EntityName EntityType = "name"
	// EntityItinerary is a journey/route record.
	EntityItinerary EntityType = "itinerary"
)

// EntityTypes returns all entity types in their canonical order.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityPlace,
		EntitySituation,
		EntityProfession,
		EntityPrayerPoint,
		EntityName,
		EntityItinerary,
	}
}

// Valid reports whether t is a member of the closed entity-type set.
func (t EntityType) Valid() bool {
	switch t {
	case EntityPlace, EntitySituation, EntityProfession,
		EntityPrayerPoint, EntityName, EntityItinerary:
		return true
	}
	return false
}

// SectionPath returns the site path prefix for the entity type's section,
// including the trailing slash. Anchors targeting one of these prefixes
// count as entity links in the quality gate.
func (t EntityType) SectionPath() string {
	switch t {
	case EntityPlace:
		return "/places/"
	case EntitySituation:
		return "/situations/"
	case EntityProfession:
		return "/professions/"
	case EntityPrayerPoint:
		return "/prayer-points/"
	case EntityName:
		return "/names/"
	case EntityItinerary:
		return "/itineraries/"
	}
	return ""
}

// HubLabel returns the display label of the entity type's hub page.
func (t EntityType) HubLabel() string {
	switch t {
	case EntityPlace:
		return "Places"
	case EntitySituation:
		return "Situations"
	case EntityProfession:
		return "Professions"
	case EntityPrayerPoint:
		return "Prayer Points"
	case EntityName:
		return "Names"
	case EntityItinerary:
		return "Itineraries"
	}
	return ""
}

// PassageSectionPath is the site path prefix for scripture passage pages.
// Passages are not records but every entity type cross-links to them.
const PassageSectionPath = "/verses/"

// Status is the editorial lifecycle state of a record.
type Status string

const (
	// StatusDraft means the record is being edited and is not public.
	StatusDraft Status = "draft"
	// StatusPublished means the record is live on the site.
	StatusPublished Status = "published"
)

// RecordMeta carries the fields shared by every entity variant.
// The engine only ever reads snapshots; records are created and edited by
// the editorial application outside this module.
type RecordMeta struct {
	// ID is the unique identifier for the record.
	ID string

	// Slug is the URL-safe identifier within the entity type's section.
	Slug string

	// Title is the human-readable title.
	Title string

	// Category is an optional free-text editorial category.
	Category string

	// Region is an optional free-text region label.
	Region string

	// Status is the editorial lifecycle state.
	Status Status

	// UpdatedAt is the last edit timestamp, used for cache invalidation.
	UpdatedAt time.Time
}

// Href returns the site path of the record's detail page.
func (m RecordMeta) Href(t EntityType) string {
	return t.SectionPath() + m.Slug
}

// Record is the closed union over the six entity variants. Each variant
// exposes its markup fragments and plain-text fields so the quality gate
// can evaluate any record without per-type casting.
//
// The union is sealed by the unexported record method: only the six
// variants in this package implement it.
type Record interface {
	// EntityType returns the variant's entity type tag.
	EntityType() EntityType

	// Meta returns the shared record fields.
	Meta() RecordMeta

	// MarkupFields returns the variant's raw markup fragments.
	MarkupFields() []string

	// PlainFields returns the variant's plain-text fields.
	PlainFields() []string

	record()
}

// Place is a geographic location record.
type Place struct {
	RecordMeta

	// Description is a plain-text overview.
	Description string

	// History is a markup fragment with the historical note.
	History string

	// Country is the containing country, used for attribute similarity.
	Country string

	// Population orders attribute-similar places (largest first).
	Population int
}

// EntityType returns EntityPlace.
func (p Place) EntityType() EntityType { return EntityPlace }

// Meta returns the shared record fields.
func (p Place) Meta() RecordMeta { return p.RecordMeta }

// MarkupFields returns the markup fragments of a place.
func (p Place) MarkupFields() []string { return []string{p.History} }

// PlainFields returns the plain-text fields of a place.
func (p Place) PlainFields() []string { return []string{p.Description} }

func (Place) record() {}

// Situation is a life-situation record.
type Situation struct {
	RecordMeta

	// Summary is a plain-text summary.
	Summary string

	// Body is the main markup fragment.
	Body string
}

// EntityType returns EntitySituation.
func (s Situation) EntityType() EntityType { return EntitySituation }

// Meta returns the shared record fields.
func (s Situation) Meta() RecordMeta { return s.RecordMeta }

// MarkupFields returns the markup fragments of a situation.
func (s Situation) MarkupFields() []string { return []string{s.Body} }

// PlainFields returns the plain-text fields of a situation.
func (s Situation) PlainFields() []string { return []string{s.Summary} }

func (Situation) record() {}

// Profession is an occupation record.
type Profession struct {
	RecordMeta

	// Description is a plain-text overview.
	Description string

	// ScriptureContext is a markup fragment placing the occupation in its
	// scriptural setting.
	ScriptureContext string
}

// EntityType returns EntityProfession.
func (p Profession) EntityType() EntityType { return EntityProfession }

// Meta returns the shared record fields.
func (p Profession) Meta() RecordMeta { return p.RecordMeta }

// MarkupFields returns the markup fragments of a profession.
func (p Profession) MarkupFields() []string { return []string{p.ScriptureContext} }

// PlainFields returns the plain-text fields of a profession.
func (p Profession) PlainFields() []string { return []string{p.Description} }

func (Profession) record() {}

// PrayerPoint is a prayer-topic record.
type PrayerPoint struct {
	RecordMeta

	// Intro is a plain-text introduction.
	Intro string

	// Body is the main markup fragment.
	Body string
}

// EntityType returns EntityPrayerPoint.
func (p PrayerPoint) EntityType() EntityType { return EntityPrayerPoint }

// Meta returns the shared record fields.
func (p PrayerPoint) Meta() RecordMeta { return p.RecordMeta }

// MarkupFields returns the markup fragments of a prayer point.
func (p PrayerPoint) MarkupFields() []string { return []string{p.Body} }

// PlainFields returns the plain-text fields of a prayer point.
func (p PrayerPoint) PlainFields() []string { return []string{p.Intro} }

func (PrayerPoint) record() {}

// Name is a named-person record.
type Name struct {
	RecordMeta

	// Meaning is a plain-text explanation of the name's meaning.
	Meaning string

	// Story is a markup fragment telling the person's story.
	Story string
}

// EntityType returns EntityName.
func (n Name) EntityType() EntityType { return EntityName }

// Meta returns the shared record fields.
func (n Name) Meta() RecordMeta { return n.RecordMeta }

// MarkupFields returns the markup fragments of a name.
func (n Name) MarkupFields() []string { return []string{n.Story} }

// PlainFields returns the plain-text fields of a name.
func (n Name) PlainFields() []string { return []string{n.Meaning} }

func (Name) record() {}

// Itinerary is a journey/route record.
type Itinerary struct {
	RecordMeta

	// Overview is a plain-text overview of the route.
	Overview string

	// RouteNotes is a markup fragment with stop-by-stop notes.
	RouteNotes string
}

// EntityType returns EntityItinerary.
func (i Itinerary) EntityType() EntityType { return EntityItinerary }

// Meta returns the shared record fields.
func (i Itinerary) Meta() RecordMeta { return i.RecordMeta }

// MarkupFields returns the markup fragments of an itinerary.
func (i Itinerary) MarkupFields() []string { return []string{i.RouteNotes} }

// PlainFields returns the plain-text fields of an itinerary.
func (i Itinerary) PlainFields() []string { return []string{i.Overview} }

func (Itinerary) record() {}

// RecordSummary is the lightweight catalog projection used for candidate
// ranking. Stores return summaries instead of full records so relationship
// queries stay cheap.
type RecordSummary struct {
	// ID is the record's unique identifier.
	ID string

	// EntityType is the record's variant tag.
	EntityType EntityType

	// Slug is the URL-safe identifier.
	Slug string

	// Title is the display title.
	Title string

	// Snippet is a short plain-text description.
	Snippet string

	// Category is the normalized-comparable category label, if any.
	Category string

	// Region is the region label, if any.
	Region string

	// Country is the country label, if any (places only).
	Country string

	// Priority orders attribute-similar candidates descending
	// (population for places, editorial weight elsewhere).
	Priority int
}

// Href returns the site path of the summarized record's detail page.
func (s RecordSummary) Href() string {
	return s.EntityType.SectionPath() + s.Slug
}

// Summarize projects a full record onto its catalog summary.
func Summarize(r Record) RecordSummary {
	meta := r.Meta()
	summary := RecordSummary{
		ID:         meta.ID,
		EntityType: r.EntityType(),
		Slug:       meta.Slug,
		Title:      meta.Title,
		Category:   meta.Category,
		Region:     meta.Region,
	}
	switch v := r.(type) {
	case Place:
		summary.Snippet = v.Description
		summary.Country = v.Country
		summary.Priority = v.Population
	case Situation:
		summary.Snippet = v.Summary
	case Profession:
		summary.Snippet = v.Description
	case PrayerPoint:
		summary.Snippet = v.Intro
	case Name:
		summary.Snippet = v.Meaning
	case Itinerary:
		summary.Snippet = v.Overview
	}
	return summary
}
