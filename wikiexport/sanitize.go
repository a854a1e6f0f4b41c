package wikiexport

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const maxFilenameRunes = 200

var (
	illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

	// A whitespace run, along with any underscores touching it, becomes one underscore; MediaWiki
	// treats '_' and ' ' as the same character anyway.  \s alone is ASCII-only in RE2, and titles
	// regularly carry NBSPs and friends.
	whitespaceRun = regexp.MustCompile(`_*[\s\v\p{Z}\x{85}\x{1c}-\x{1f}][_\s\v\p{Z}\x{85}\x{1c}-\x{1f}]*`)

	// fixed namespace for placeholder names, so the same title always maps to the same file.
	untitledNamespace = uuid.MustParse("6f1d0b8e-4c1a-5a3e-9d7b-2f0e8c6a4b13")
)

// SanitizeFilename turns a page title into something safe to use as a filename on common
// filesystems.  Distinct titles may well sanitize to the same string; nothing here prevents that.
func SanitizeFilename(title string) string {
	s := illegalFilenameChars.ReplaceAllString(title, "_")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._")

	// measured in characters, not bytes, so we never split a multibyte rune
	if r := []rune(s); len(r) > maxFilenameRunes {
		// cutting can expose a trailing _ or . again
		s = strings.TrimRight(string(r[:maxFilenameRunes]), "._")
	}
	return s
}

// FilenameForTitle returns the on-disk name (with .txt extension) used for title.  Titles that
// sanitize to nothing get a stable untitled-<uuid> placeholder instead of a bare ".txt".
func FilenameForTitle(title string) string {
	name := SanitizeFilename(title)
	if name == "" {
		name = "untitled-" + uuid.NewSHA1(untitledNamespace, []byte(title)).String()
	}
	return name + ".txt"
}
