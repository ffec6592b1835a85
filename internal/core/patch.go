package core

// SourcePatch is an explicit partial update of a ComponentSource. Nil fields
// are left untouched; the merge semantics live here rather than in an
// implicit map merge.
type SourcePatch struct {
	Canonical *string
	URL       *string
	// Data replaces the inline value when non-nil. Inline data may never
	// be set to null, so nil always means "unchanged".
	Data     any
	Metadata *SourceMetadata
}

// Apply merges the patch onto a source and returns the merged copy.
func (p SourcePatch) Apply(s ComponentSource) ComponentSource {
	if p.Canonical != nil {
		s.Canonical = *p.Canonical
	}
	if p.URL != nil {
		s.URL = *p.URL
	}
	if p.Data != nil {
		s.Data = p.Data
	}
	if p.Metadata != nil {
		s.Metadata = p.Metadata
	}
	return s
}

// MetadataPatch is an explicit partial update of the DAK metadata.
type MetadataPatch struct {
	ID             *string
	Name           *string
	Title          *string
	Description    *string
	Version        *string
	Status         *string
	PublicationURL *string
	License        *string
	CopyrightYear  *string
	Publisher      *string
}

// Apply merges the patch onto metadata and returns the merged copy.
func (p MetadataPatch) Apply(m Metadata) Metadata {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&m.ID, p.ID)
	set(&m.Name, p.Name)
	set(&m.Title, p.Title)
	set(&m.Description, p.Description)
	set(&m.Version, p.Version)
	set(&m.Status, p.Status)
	set(&m.PublicationURL, p.PublicationURL)
	set(&m.License, p.License)
	set(&m.CopyrightYear, p.CopyrightYear)
	set(&m.Publisher, p.Publisher)
	return m
}
