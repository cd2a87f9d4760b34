package contract

import (
	"testing"
	"unicode"
)

// FuzzSlug fuzzes Slug with arbitrary titles.
func FuzzSlug(f *testing.F) {
	seeds := []string{
		"Stock Trade Volume by year",
		"Cases Diagnosed/Age Group with Job Type",
		"",
		"___",
		"Ünïcödé Tïtle 2024",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, title string) {
		slug := Slug(title)
		if slug == "" {
			t.Fatalf("empty slug for %q", title)
		}
		if slug[0] == '_' || slug[len(slug)-1] == '_' {
			t.Fatalf("slug %q has leading or trailing separator", slug)
		}
		for _, r := range slug {
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				t.Fatalf("slug %q contains %q", slug, r)
			}
		}
	})
}

// FuzzParseCondition fuzzes ParseCondition with arbitrary filters.
func FuzzParseCondition(f *testing.F) {
	for _, seed := range []string{"a=b", "=", "Gender=F", "x==y", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		c, err := ParseCondition(s)
		if err == nil && c.Column == "" {
			t.Fatalf("accepted empty column for %q", s)
		}
	})
}
