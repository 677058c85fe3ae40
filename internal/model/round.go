package model

import "time"

// Round represents a single competition round as listed on a
// DiscGolfMetrix series page. It carries only what the series
// selector exposes; full details live in RoundDetail.
type Round struct {
	// Title is the round title from the series selector, e.g. "Runde 14".
	Title string `json:"title"`

	// StartsAt is the scheduled start time parsed from the selector entry.
	// The page renders times in the series' local timezone.
	StartsAt time.Time `json:"starts_at"`

	// URL is the absolute URL of the round's event page.
	URL string `json:"url"`
}

// RoundDetail holds the full information scraped from a round's event page.
// It embeds everything needed to compose an announcement post.
//
// Design decision: We keep RoundDetail separate from Round rather than
// filling optional fields on Round because:
//  1. The two come from different pages with different failure modes
//  2. Round is what the selector guarantees; RoundDetail is best-effort
//  3. Pipeline steps can type-check which stage produced their input
type RoundDetail struct {
	// Title is the event page heading. Falls back to "Ukjent tittel"
	// when the page has no <h1>.
	Title string `json:"title"`

	// CourseID is the numeric Metrix course ID, 0 when unknown.
	CourseID int `json:"course_id,omitempty"`

	// Course is the course name, e.g. "Stjørdal Frisbeegolfbane".
	// Falls back to "Ukjent bane" when the page has no course link.
	Course string `json:"course"`

	// Layout is the layout name, e.g. "Hovedbane 18 hull".
	// Equal to Course when the page does not separate the two.
	Layout string `json:"layout"`

	// CourseFull combines course and layout for display, e.g.
	// "Stjørdal Frisbeegolfbane – Hovedbane 18 hull".
	CourseFull string `json:"course_full"`

	// Description is the free-form text from the event's info tab.
	// May be empty.
	Description string `json:"description,omitempty"`

	// StartsAt is the scheduled start time, carried over from the Round.
	StartsAt time.Time `json:"starts_at"`

	// URL is the absolute URL of the event page.
	URL string `json:"url"`
}

// Fallback strings used when an event page is missing expected elements.
// These are Norwegian because the announcement posts are Norwegian.
const (
	// UnknownTitle is used when an event page has no <h1> heading.
	UnknownTitle = "Ukjent tittel"

	// UnknownCourse is used when an event page has no course link.
	UnknownCourse = "Ukjent bane"
)
