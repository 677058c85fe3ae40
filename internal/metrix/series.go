package metrix

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/model"
	"golang.org/x/net/html"
)

// seriesTimeLayout matches the start time format DiscGolfMetrix renders in
// the competition selector, e.g. "08/22/25 18:00". The page shows no
// timezone; times are wall-clock local to the series.
const seriesTimeLayout = "01/02/06 15:04"

// selectorClass is the class of the <nav> holding the round list on a
// series info page.
const selectorClass = "competition-selector-large"

// ParseSeries extracts the rounds listed on a series info page.
//
// A round entry is an anchor inside the competition selector's list whose
// href is site-relative. The anchor's <b> child is the round title; the
// anchor's remaining text must parse as the selector's date format.
// Anchors missing either are skipped: the selector also contains
// navigation items that are not rounds.
//
// Relative hrefs are resolved against base. Start times are interpreted
// in loc, which should be the series' local timezone; nil means the
// system timezone.
func ParseSeries(r io.Reader, base *url.URL, loc *time.Location) ([]model.Round, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse series page: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}

	rounds := make([]model.Round, 0)

	// Walk the DOM tracking the nav > ul > li ancestry the selector
	// markup uses. Anchors outside that chain are not round entries.
	var walk func(n *html.Node, inNav, inList, inItem bool)
	walk = func(n *html.Node, inNav, inList, inItem bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "nav":
				inNav = hasClass(n, selectorClass)
			case "ul":
				inList = inNav
			case "li":
				inItem = inList
			case "a":
				if inNav && inList && inItem {
					if round, ok := parseSelectorAnchor(n, base, loc); ok {
						rounds = append(rounds, round)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inNav, inList, inItem)
		}
	}
	walk(doc, false, false, false)

	return rounds, nil
}

// parseSelectorAnchor converts one selector anchor into a Round.
// Returns false when the anchor is not a round entry.
func parseSelectorAnchor(a *html.Node, base *url.URL, loc *time.Location) (model.Round, bool) {
	href := getAttr(a, "href")
	if !strings.HasPrefix(href, "/") {
		return model.Round{}, false
	}

	b := findFirst(a, "b")
	if b == nil {
		return model.Round{}, false
	}
	title := strings.TrimSpace(rawText(b))

	// The anchor text minus the title is the start time.
	remaining := rawText(a)
	if title != "" {
		remaining = strings.ReplaceAll(remaining, title, "")
	}
	remaining = strings.TrimSpace(remaining)

	startsAt, err := time.ParseInLocation(seriesTimeLayout, remaining, loc)
	if err != nil {
		return model.Round{}, false
	}

	return model.Round{
		Title:    title,
		StartsAt: startsAt,
		URL:      resolveURL(base, href),
	}, true
}
