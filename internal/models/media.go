package models

// MediaType discriminates the polymorphic content a like, comment, sync record or
// open session points at.
type MediaType string

const (
	MediaEvent MediaType = "Event"
	MediaPost  MediaType = "Post"
)

// Valid reports whether t is one of the known content variants.
func (t MediaType) Valid() bool {
	return t == MediaEvent || t == MediaPost
}

// Noun is the lower-case word used in notification texts.
func (t MediaType) Noun() string {
	switch t {
	case MediaEvent:
		return "event"
	case MediaPost:
		return "post"
	}
	return "item"
}
