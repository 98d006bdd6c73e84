package models

// Era buckets used by the catalog. Classification is a text heuristic over
// the source biography, not a controlled vocabulary (see ingest.ClassifyEra).
const (
	EraNavodaya = "Navodaya"
	EraNavya    = "Navya"
	EraModern   = "Modern"
)

const (
	SourceTypeWriter = "Writer"
	SourceTypePoet   = "Poet"
)

type Author struct {
	ID          int64  `json:"id"`
	NameNative  string `json:"name_native"`
	NameEnglish string `json:"name_english"`
	Biography   string `json:"biography,omitempty"`
	Era         string `json:"era"`
	ImageRef    string `json:"image_ref,omitempty"`
	SourceType  string `json:"source_type"`
}

// AuthorDraft is the normalized, in-memory form of one source record.
// All raw source shapes are mapped into this structure first; the merger
// and the upsert engine only ever see drafts.
type AuthorDraft struct {
	NameNative  string      `json:"name_native"`
	NameEnglish string      `json:"name_english"`
	Biography   string      `json:"biography"`
	Era         string      `json:"era"`
	ImageRef    string      `json:"image_ref"`
	Works       []WorkDraft `json:"works"`
	Poems       []WorkDraft `json:"poems"`
	Genres      []string    `json:"genres"`
	SourceType  string      `json:"source_type"`
}
