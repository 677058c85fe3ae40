package metrix

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tfk-discgolf/metrixbot/internal/model"
	"golang.org/x/net/html"
)

// coursePathPrefix marks the anchor linking an event page to its course.
const coursePathPrefix = "/course/"

// infoTabClass is the class of the <div> holding the event description.
const infoTabClass = "info-tab-content"

// ParseDetail extracts announcement details from a round's event page.
//
// Every field is best-effort with Norwegian fallbacks: the page layout is
// not under our control and an announcement with "Ukjent bane" is better
// than no announcement. Start time and URL are carried over from the
// series listing; the event page does not repeat them in parseable form.
func ParseDetail(r io.Reader, round model.Round) (*model.RoundDetail, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse event page: %w", err)
	}

	detail := &model.RoundDetail{
		Title:      model.UnknownTitle,
		Course:     model.UnknownCourse,
		Layout:     model.UnknownCourse,
		CourseFull: model.UnknownCourse,
		StartsAt:   round.StartsAt,
		URL:        round.URL,
	}

	if h1 := findFirst(doc, "h1"); h1 != nil {
		detail.Title = strings.TrimSpace(rawText(h1))
	}

	if a := courseAnchor(doc); a != nil {
		parseCourse(a, detail)
	}

	if div := findFirstFunc(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" && hasClass(n, infoTabClass)
	}); div != nil {
		detail.Description = joinedText(div, "\n")
	}

	return detail, nil
}

// courseAnchor returns the first anchor linking to a course page.
func courseAnchor(doc *html.Node) *html.Node {
	return findFirstFunc(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a" &&
			strings.HasPrefix(getAttr(n, "href"), coursePathPrefix)
	})
}

// parseCourse fills the course fields from the course anchor.
//
// The anchor text renders as "Course → Layout" with an arrow between the
// two. Some pages write the arrow as a literal "->", which is stripped.
// Pages for courses with a single layout omit the arrow entirely; then
// the whole text is both course and full name, and the layout keeps its
// fallback.
func parseCourse(a *html.Node, detail *model.RoundDetail) {
	href := getAttr(a, "href")
	if idx := strings.LastIndex(href, coursePathPrefix); idx >= 0 {
		suffix := href[idx+len(coursePathPrefix):]
		if isDigits(suffix) {
			if id, err := strconv.Atoi(suffix); err == nil {
				detail.CourseID = id
			}
		}
	}

	text := strings.ReplaceAll(joinedText(a, " "), "->", "")
	if !strings.Contains(text, "→") {
		detail.Course = text
		detail.CourseFull = text
		return
	}

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(text, "→") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, strings.Trim(p, " -"))
	}

	if len(parts) >= 2 {
		detail.Course = parts[0]
		detail.Layout = parts[1]
		detail.CourseFull = parts[0] + " – " + parts[1]
		return
	}

	detail.Course = text
	detail.CourseFull = text
}
