package model

import "encoding/json"

// GameLookup is the best-match element of a RAWG search response. The API
// omits fields freely, so everything beyond the identity pair is optional and
// presence is asked through the predicates below rather than ad hoc nil checks.
type GameLookup struct {
	ID           *int64          `json:"id"`
	Slug         *string         `json:"slug"`
	Released     *string         `json:"released"`
	Rating       float64         `json:"rating"`
	Ratings      json.RawMessage `json:"ratings"`
	RatingsCount *int            `json:"ratings_count"`

	// Raw is the untouched search hit, kept for the games.metadata column.
	Raw json.RawMessage `json:"-"`
}

// HasIdentity reports whether the match carries both id and slug. Matches
// without identity are skipped entirely.
func (g *GameLookup) HasIdentity() bool {
	return g != nil && g.ID != nil && g.Slug != nil
}

// HasRelease reports whether a release date was returned.
func (g *GameLookup) HasRelease() bool {
	return g.Released != nil
}

// HasRating reports whether a rating should be recorded. The stored value
// comes from the rating field while presence is gated on the differently-named
// ratings collection; do not "fix" the asymmetry, downstream consumers rely on it.
func (g *GameLookup) HasRating() bool {
	return len(g.Ratings) > 0
}

// HasRatingCount reports whether a ratings count was returned.
func (g *GameLookup) HasRatingCount() bool {
	return g.RatingsCount != nil
}
