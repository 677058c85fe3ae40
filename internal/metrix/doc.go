// Package metrix fetches and parses DiscGolfMetrix pages.
//
// The package understands exactly two page shapes:
//   - the series info page, whose competition selector lists every round
//     of a series with title, start time and link
//   - a round's event page, which carries the heading, course link and
//     free-form description used in announcements
//
// Parsing is deliberately specific to these two shapes. This is not a
// crawler: no links are followed beyond the round pages the series
// selector names, and no other markup is interpreted.
//
// The Client performs the HTTP side with a desktop browser User-Agent,
// because DiscGolfMetrix serves the full competition selector markup to
// desktop browsers and the parsers depend on that variant of the page.
package metrix
