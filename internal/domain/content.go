package domain

import "time"

// ContentKind distinguishes the two content types the recommendation pages
// serve.
type ContentKind string

const (
	ContentArticle ContentKind = "article"
	ContentAudio   ContentKind = "audio"
)

// RecommendedState tags content with the stress category it is meant for.
// "all" content is shown to every category.
type RecommendedState string

const (
	RecommendedLow    RecommendedState = "low"
	RecommendedMedium RecommendedState = "medium"
	RecommendedHigh   RecommendedState = "high"
	RecommendedAll    RecommendedState = "all"
)

// IsValid reports whether s is one of the four known states.
func (s RecommendedState) IsValid() bool {
	switch s {
	case RecommendedLow, RecommendedMedium, RecommendedHigh, RecommendedAll:
		return true
	}
	return false
}

// StateForCategory maps a quiz category onto the content state used for
// recommendation filtering.
func StateForCategory(category Category) RecommendedState {
	switch category {
	case CategoryLow:
		return RecommendedLow
	case CategoryMedium:
		return RecommendedMedium
	case CategoryHigh:
		return RecommendedHigh
	}
	return RecommendedAll
}

// Content is an article or audio track managed by administrators. Body holds
// the article text; MediaURL points at the audio file for audio content.
type Content struct {
	ID             string
	Kind           ContentKind
	Title          string
	Slug           string
	Body           string
	MediaURL       string
	Tags           []string
	RecommendedFor RecommendedState
	Published      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
