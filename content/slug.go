// Package content holds the pure write-time derivations shared by the
// create and update paths: slug generation and read-time estimation.
package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	hebrewRe      = regexp.MustCompile(`[\x{0590}-\x{05FF}]`)
	hebrewStripRe = regexp.MustCompile(`[^\x{0590}-\x{05FF}\w\s-]`)
	latinStripRe  = regexp.MustCompile(`[^\w\s-]`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	hyphenRunRe   = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug derives a URL-safe slug from a title in one language.
//
// Titles containing Hebrew characters keep their Hebrew letters as-is; no
// transliteration happens. Degenerate titles fall back to a prefixed slug
// with an epoch-derived suffix. The suffix nudges uniqueness but does not
// guarantee it; duplicate slugs are tolerated and resolved first-match at
// lookup time.
func GenerateSlug(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "untitled-" + epochSuffix()
	}

	if hebrewRe.MatchString(trimmed) {
		s := spaceRunRe.ReplaceAllString(trimmed, "-")
		s = hebrewStripRe.ReplaceAllString(s, "")
		s = hyphenRunRe.ReplaceAllString(s, "-")
		s = strings.Trim(s, "-")
		if s == "" {
			return "hebrew-post-" + epochSuffix()
		}
		return s
	}

	s := strings.ToLower(trimmed)
	s = latinStripRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "post-" + epochSuffix()
	}
	return s
}

// epochSuffix returns the last 6 digits of the current epoch milliseconds.
func epochSuffix() string {
	return fmt.Sprintf("%06d", time.Now().UnixMilli()%1_000_000)
}
