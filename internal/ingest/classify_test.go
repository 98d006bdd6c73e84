package ingest

import (
	"reflect"
	"testing"

	"sahityahub/pkg/models"
)

func TestClassifyEra(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"navya", "A leading voice of the Navya movement", models.EraNavya},
		{"navodaya", "Pioneer of Navodaya literature", models.EraNavodaya},
		{"navya wins over navodaya", "Bridged Navodaya and Navya periods", models.EraNavya},
		{"neither", "Celebrated essayist and translator", models.EraModern},
		{"case sensitive", "wrote in the navya idiom", models.EraModern},
		{"empty", "", models.EraModern},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyEra(tc.text); got != tc.want {
				t.Fatalf("ClassifyEra(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassifyWorkType(t *testing.T) {
	cases := []struct {
		name         string
		title        string
		genreLabel   string
		authorGenres []string
		want         string
	}{
		{"label poetry", "Some Title", "Epic Poetry", nil, models.WorkTypePoetry},
		{"label poem", "Some Title", "Narrative Poem", nil, models.WorkTypePoetry},
		{"label drama", "Some Title", "Drama", nil, models.WorkTypePlay},
		{"label short story", "Some Title", "Short Story Collection", nil, models.WorkTypeShortStory},
		{"label unknown falls to novel", "Some Title", "Historical Fiction", []string{"Drama"}, models.WorkTypeNovel},
		{"no label title play", "Shudra Tapaswi (Play)", "", nil, models.WorkTypePlay},
		{"no label author drama", "Some Title", "", []string{"Drama", "Novel"}, models.WorkTypePlay},
		{"no label author short stories", "Some Title", "", []string{"Short Stories"}, models.WorkTypeShortStory},
		{"no signal", "Some Title", "", []string{"Novel"}, models.WorkTypeNovel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyWorkType(tc.title, tc.genreLabel, tc.authorGenres)
			if got != tc.want {
				t.Fatalf("ClassifyWorkType(%q, %q, %v) = %q, want %q",
					tc.title, tc.genreLabel, tc.authorGenres, got, tc.want)
			}
		})
	}
}

func TestSplitGenreLabel(t *testing.T) {
	cases := []struct {
		label string
		want  []string
	}{
		{"Novel, Epic / Mythology", []string{"Novel", "Epic", "Mythology"}},
		{"Poetry", []string{"Poetry"}},
		{"  , / ", []string{}},
		{"", []string{}},
	}

	for _, tc := range cases {
		got := SplitGenreLabel(tc.label)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitGenreLabel(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestImageRef(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"U. R. Ananthamurthy", "u_r_ananthamurthy.jpg"},
		{"D. R. Bendre", "d_r_bendre.jpg"},
		{"Kuvempu", "kuvempu.jpeg"},
		{"Poornachandra Tejaswi", "tejaswi.jpeg"},
	}

	for _, tc := range cases {
		if got := ImageRef(tc.name); got != tc.want {
			t.Fatalf("ImageRef(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Graama Seva Bhaagya (Bevina Seena Sharief)", "Bevina Seena Sharief"},
		{"Kuvempu", "Kuvempu"},
		{"Name ()", "Name ()"},
	}

	for _, tc := range cases {
		if got := CanonicalName(tc.in); got != tc.want {
			t.Fatalf("CanonicalName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNativeName(t *testing.T) {
	if got := NativeName("Kuvempu"); got != "ಕುವೆಂಪು" {
		t.Fatalf("NativeName(Kuvempu) = %q", got)
	}
	if got := NativeName("Unknown Author"); got != "Unknown Author" {
		t.Fatalf("NativeName fallback = %q, want the English name back", got)
	}
}
