package models

const (
	WorkTypeNovel      = "Novel"
	WorkTypePoetry     = "Poetry"
	WorkTypePlay       = "Play"
	WorkTypeShortStory = "Short Story"
)

type Work struct {
	ID           int64    `json:"id"`
	AuthorID     int64    `json:"author_id"`
	TitleNative  string   `json:"title_native"`
	TitleEnglish string   `json:"title_english"`
	Type         string   `json:"type"`
	Synopsis     string   `json:"synopsis,omitempty"`
	Genres       []string `json:"genres"`
}

// WorkDraft is a fully classified work candidate produced by the normalizer.
// TitleNative falls back to the English title when the source has no native
// script title.
type WorkDraft struct {
	TitleNative  string   `json:"title_native"`
	TitleEnglish string   `json:"title_english"`
	Type         string   `json:"type"`
	Synopsis     string   `json:"synopsis"`
	Genres       []string `json:"genres"`
}
