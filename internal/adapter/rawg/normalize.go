package rawg

import (
	"regexp"
	"strings"
)

var (
	punctRuns = regexp.MustCompile(`[.,;:/]+`)
	spaceRuns = regexp.MustCompile(` +`)
)

// NormalizeTitle prepares a raw game title for the search endpoint: lower-case,
// slashes to spaces, punctuation runs to single spaces, repeated spaces
// collapsed, tokens joined with +.
func NormalizeTitle(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "/", " ")
	name = punctRuns.ReplaceAllString(name, " ")
	name = spaceRuns.ReplaceAllString(name, " ")
	return strings.Join(strings.Split(name, " "), "+")
}
