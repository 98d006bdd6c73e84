package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"sahityahub/pkg/models"
)

// Source is implemented by each raw catalog source. Each source is
// responsible for reading its own payload shape and mapping it into
// normalized AuthorDrafts.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.AuthorDraft, error)
}

// FileSource reads a JSON file of loosely structured author records. The
// payload may be a bare array or an object wrapping the array under one of
// several known container keys.
type FileSource struct {
	Label         string
	Path          string
	SourceType    string
	ContainerKeys []string
}

func NewWriterSource(path string) *FileSource {
	return &FileSource{
		Label:         "writers",
		Path:          path,
		SourceType:    models.SourceTypeWriter,
		ContainerKeys: []string{"authors"},
	}
}

func NewPoetSource(path string) *FileSource {
	return &FileSource{
		Label:         "poets",
		Path:          path,
		SourceType:    models.SourceTypePoet,
		ContainerKeys: []string{"poets", "authors"},
	}
}

func (s *FileSource) Name() string { return s.Label }

// Load reads and normalizes the source file. A missing or unreadable file
// degrades to zero records: ingestion keeps its availability guarantee and
// one bad source never aborts the pipeline.
func (s *FileSource) Load(ctx context.Context) ([]models.AuthorDraft, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		log.Printf("[ingest] source %s: read %s: %v (treating as empty)", s.Label, s.Path, err)
		return nil, nil
	}

	records := unwrapRecords(s.Label, b, s.ContainerKeys)

	drafts := make([]models.AuthorDraft, 0, len(records))
	for _, rec := range records {
		d, ok := normalizeRecord(rec, s.SourceType)
		if !ok {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// unwrapRecords peels the container layer off a raw payload. An object is
// searched for the container keys in priority order; a bare array is used
// directly; anything else yields no records.
func unwrapRecords(label string, data []byte, keys []string) []map[string]any {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("[ingest] source %s: malformed payload: %v (treating as empty)", label, err)
		return nil
	}

	switch v := payload.(type) {
	case map[string]any:
		for _, k := range keys {
			if seq, ok := v[k].([]any); ok {
				return toRecords(seq)
			}
		}
		return nil
	case []any:
		return toRecords(v)
	default:
		return nil
	}
}

func toRecords(seq []any) []map[string]any {
	out := make([]map[string]any, 0, len(seq))
	for _, item := range seq {
		if rec, ok := item.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}

// normalizeRecord maps one raw record into a canonical draft. Records
// without a usable name are dropped.
func normalizeRecord(rec map[string]any, sourceType string) (models.AuthorDraft, bool) {
	name := strings.TrimSpace(stringField(rec, "name"))
	if name == "" {
		return models.AuthorDraft{}, false
	}
	name = CanonicalName(name)

	biography := stringField(rec, "biography")
	contribution := stringField(rec, "contribution")
	if biography == "" {
		biography = contribution
	}

	genres := stringSliceField(rec, "genres")

	d := models.AuthorDraft{
		NameNative:  NativeName(name),
		NameEnglish: name,
		Biography:   biography,
		Era:         ClassifyEra(biography + " " + contribution),
		ImageRef:    ImageRef(name),
		Genres:      genres,
		SourceType:  sourceType,
	}
	d.Works = normalizeWorkItems(rec["famous_works"], name, genres, false)
	d.Poems = normalizeWorkItems(rec["famous_poems"], name, genres, true)
	return d, true
}

// normalizeWorkItems handles both raw shapes: a bare title string or an
// object carrying title / short_description / genre. Poems bypass the type
// cascade and are always Poetry.
func normalizeWorkItems(raw any, authorName string, authorGenres []string, poem bool) []models.WorkDraft {
	seq, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]models.WorkDraft, 0, len(seq))
	for _, item := range seq {
		var title, desc, label string
		switch v := item.(type) {
		case string:
			title = v
		case map[string]any:
			title = stringField(v, "title")
			desc = stringField(v, "short_description")
			label = stringField(v, "genre")
		}

		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		workType := models.WorkTypePoetry
		if !poem {
			workType = ClassifyWorkType(title, label, authorGenres)
		}

		genres := authorGenres
		if strings.TrimSpace(label) != "" {
			genres = SplitGenreLabel(label)
		}

		synopsis := strings.TrimSpace(desc)
		if synopsis == "" {
			if poem {
				synopsis = fmt.Sprintf("A famous poem by %s.", authorName)
			} else {
				synopsis = fmt.Sprintf("A notable work by %s.", authorName)
			}
		}

		out = append(out, models.WorkDraft{
			TitleNative:  title, // no native title in the sources; English stands in
			TitleEnglish: title,
			Type:         workType,
			Synopsis:     synopsis,
			Genres:       genres,
		})
	}
	return out
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

func stringSliceField(rec map[string]any, key string) []string {
	seq, ok := rec[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
