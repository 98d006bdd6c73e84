package ingest

import (
	"regexp"
	"strings"

	"sahityahub/pkg/models"
)

// Classification of loosely labelled source records is heuristic string
// matching. The rules live in ordered tables so the first-match-wins order
// is explicit and each rule is testable on its own.

type eraRule struct {
	Token string
	Era   string
}

// eraRules is scanned in order against the raw biography/contribution text;
// the first token found wins. Matching is case-sensitive.
var eraRules = []eraRule{
	{Token: "Navya", Era: models.EraNavya},
	{Token: "Navodaya", Era: models.EraNavodaya},
}

func ClassifyEra(text string) string {
	for _, r := range eraRules {
		if strings.Contains(text, r.Token) {
			return r.Era
		}
	}
	return models.EraModern
}

type workTypeRule struct {
	Tokens   []string
	WorkType string
}

// genreLabelRules classifies a work by its own genre label, when the source
// carries one. The label is lowercased before matching.
var genreLabelRules = []workTypeRule{
	{Tokens: []string{"poem", "poetry"}, WorkType: models.WorkTypePoetry},
	{Tokens: []string{"play", "drama"}, WorkType: models.WorkTypePlay},
	{Tokens: []string{"short", "story"}, WorkType: models.WorkTypeShortStory},
}

// ClassifyWorkType resolves a work's type. A per-item genre label takes
// precedence; without one we fall back to scanning the title and the
// author's aggregate genre tags.
func ClassifyWorkType(title, genreLabel string, authorGenres []string) string {
	if label := strings.ToLower(strings.TrimSpace(genreLabel)); label != "" {
		for _, r := range genreLabelRules {
			for _, tok := range r.Tokens {
				if strings.Contains(label, tok) {
					return r.WorkType
				}
			}
		}
		return models.WorkTypeNovel
	}

	if strings.Contains(title, "Play") || containsString(authorGenres, "Drama") {
		return models.WorkTypePlay
	}
	if containsString(authorGenres, "Short Stories") {
		return models.WorkTypeShortStory
	}
	return models.WorkTypeNovel
}

// SplitGenreLabel turns a multi-part genre label ("Novel, Epic / Mythology")
// into trimmed tags.
func SplitGenreLabel(label string) []string {
	parts := strings.FieldsFunc(label, func(r rune) bool {
		return r == ',' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// nativeNames maps resolved English names to their native-script form.
// Names missing here keep the English name for display.
var nativeNames = map[string]string{
	"Kuvempu":                  "ಕುವೆಂಪು",
	"U. R. Ananthamurthy":      "ಯು.ಆರ್. ಅನಂತಮೂರ್ತಿ",
	"S. L. Bhyrappa":           "ಎಸ್.ಎಲ್. ಭೈರಪ್ಪ",
	"Poornachandra Tejaswi":    "ಪೂರ್ಣಚಂದ್ರ ತೇಜಸ್ವಿ",
	"Bevina Seena Sharief":     "ಬೆವಿನ ಸೀನ ಶರೀಫ್",
	"D. R. Bendre":             "ಡಿ. ಆರ್. ಬೇಂದ್ರೆ",
	"Masti Venkatesha Iyengar": "ಮಾಸ್ತಿ ವೆಂಕಟೇಶ ಅಯ್ಯಂಗಾರ್",
	"K. S. Narasimhaswamy":     "ಕೆ. ಎಸ್. ನರಸಿಂಹಸ್ವಾಮಿ",
	"G. S. Shivarudrappa":      "ಜಿ. ಎಸ್. ಶಿವರುದ್ರಪ್ಪ",
}

func NativeName(nameEnglish string) string {
	if native, ok := nativeNames[nameEnglish]; ok {
		return native
	}
	return nameEnglish
}

// imageOverrides replaces the derived slug for names whose portrait file
// does not follow the default naming.
var imageOverrides = map[string]string{
	"Kuvempu":               "kuvempu.jpeg",
	"Poornachandra Tejaswi": "tejaswi.jpeg",
}

// ImageRef derives the portrait file reference: lowercase, spaces joined
// with underscores, periods removed.
func ImageRef(nameEnglish string) string {
	if ref, ok := imageOverrides[nameEnglish]; ok {
		return ref
	}
	slug := strings.ToLower(nameEnglish)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, ".", "")
	return slug + ".jpg"
}

// Some sources embed the real name parenthetically after a display name,
// e.g. "Graama Seva Bhaagya (Bevina Seena Sharief)".
var parentheticalName = regexp.MustCompile(`^.+\(([^)]+)\)\s*$`)

// CanonicalName resolves the working identity of a record: when a
// parenthetical real name is present it replaces the display name.
func CanonicalName(name string) string {
	if m := parentheticalName.FindStringSubmatch(name); m != nil {
		if real := strings.TrimSpace(m[1]); real != "" {
			return real
		}
	}
	return name
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
