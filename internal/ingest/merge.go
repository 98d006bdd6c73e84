package ingest

import "sahityahub/pkg/models"

// Merge combines normalized output from multiple sources into one set of
// authors keyed by resolved English name. Sources are processed in the
// given order and the first source to register a name owns the record: a
// later record for the same name enriches the registered one but never
// replaces it. Given the same inputs in the same order, the result is
// always identical.
func Merge(sources ...[]models.AuthorDraft) map[string]models.AuthorDraft {
	merged := make(map[string]models.AuthorDraft)
	for _, drafts := range sources {
		for _, d := range drafts {
			existing, ok := merged[d.NameEnglish]
			if !ok {
				merged[d.NameEnglish] = d
				continue
			}
			merged[d.NameEnglish] = enrich(existing, d)
		}
	}
	return merged
}

// enrich folds a later source's record into the registered one. Only the
// poems list grows; biography, era, image and the works list stay as the
// first source set them.
func enrich(base, incoming models.AuthorDraft) models.AuthorDraft {
	base.Poems = appendNewTitles(base.Poems, incoming.Poems)
	return base
}

func appendNewTitles(existing, incoming []models.WorkDraft) []models.WorkDraft {
	seen := make(map[string]struct{}, len(existing))
	for _, w := range existing {
		seen[w.TitleEnglish] = struct{}{}
	}
	for _, w := range incoming {
		if _, ok := seen[w.TitleEnglish]; ok {
			continue
		}
		existing = append(existing, w)
		seen[w.TitleEnglish] = struct{}{}
	}
	return existing
}
