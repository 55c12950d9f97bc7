package engtag

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fix receipt issue eng-707", "Fix receipt issue #eng707"},
		{"[eng789] Update translations", "Update translations #eng789"},
		{"Refactor auth module", "Refactor auth module"},
		{"eng 42 tidy invoices", "tidy invoices #eng42"},
		{"(ENG#1234) Payment retries", "Payment retries #eng1234"},
		{"Rework exports [eng 55]", "Rework exports #eng55"},
		// Tag-only titles collapse to just the hashtag.
		{"eng-9", "#eng9"},
		{"[eng9]", "#eng9"},
		// First match wins; the second reference stays in the title.
		{"eng1 then eng2 cleanup", "then eng2 cleanup #eng1"},
		// "eng" without digits is not a tag.
		{"Improve eng onboarding docs", "Improve eng onboarding docs"},
		// Digits must follow immediately after at most one separator.
		{"strengthen validation", "strengthen validation"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.title); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	tag, cleaned, ok := Extract("Fix receipt issue eng-707")
	if !ok || tag != "eng707" || cleaned != "Fix receipt issue" {
		t.Errorf("got tag=%q cleaned=%q ok=%v", tag, cleaned, ok)
	}

	tag, cleaned, ok = Extract("Refactor auth module")
	if ok || tag != "" || cleaned != "Refactor auth module" {
		t.Errorf("no-tag title should pass through, got tag=%q cleaned=%q ok=%v", tag, cleaned, ok)
	}

	// Brackets around the tag vanish with it, including leftover pairs
	// emptied by the removal.
	_, cleaned, _ = Extract("Billing [ eng-3 ] rework")
	if cleaned != "Billing rework" {
		t.Errorf("leftover brackets should be stripped, got %q", cleaned)
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	for _, title := range []string{"Eng-7 fix", "ENG-7 fix", "eNg 7 fix"} {
		tag, _, ok := Extract(title)
		if !ok || tag != "eng7" {
			t.Errorf("Extract(%q): got tag=%q ok=%v, want eng7", title, tag, ok)
		}
	}
}
