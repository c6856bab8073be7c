package model

// Exam is the exam metadata fetched from the content store. It is read-only
// to this service and immutable for the lifetime of one attempt.
type Exam struct {
	ID       string `json:"_id"`
	Code     string `json:"code"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	// DurationMinutes is the main-exam duration; SampleDurationMinutes is the
	// free trial duration. Both fall back to DefaultDurationMinutes when absent.
	DurationMinutes       int `json:"duration"`
	SampleDurationMinutes int `json:"sampleDuration"`

	// Publication is spread over several legacy fields; use Published().
	IsPublishedFlag *bool  `json:"isPublished"`
	PublishedFlag   *bool  `json:"published"`
	Status          string `json:"status"`
}

// DefaultDurationMinutes applies when an exam carries no usable duration.
const DefaultDurationMinutes = 60

// Published reports whether the exam is visible to learners.
func (e *Exam) Published() bool {
	return publishedFrom(e.IsPublishedFlag, e.PublishedFlag, e.Status)
}

// AttemptDurationMinutes returns the countdown seed for the given variant.
// The trial variant prefers sampleDuration, then duration, then the default.
func (e *Exam) AttemptDurationMinutes(sampleOnly bool) int {
	if sampleOnly && e.SampleDurationMinutes > 0 {
		return e.SampleDurationMinutes
	}
	if e.DurationMinutes > 0 {
		return e.DurationMinutes
	}
	return DefaultDurationMinutes
}
