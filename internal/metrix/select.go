package metrix

import (
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// SelectOn returns the first round whose calendar date in loc equals the
// calendar date of target in loc, or nil when none matches.
//
// Comparison is by date, not instant: a round at 18:00 matches a target
// of midnight the same day. The series page never lists two rounds on
// the same date, so first-match is unambiguous in practice.
func SelectOn(rounds []model.Round, target time.Time, loc *time.Location) *model.Round {
	if loc == nil {
		loc = time.Local
	}

	ty, tm, td := target.In(loc).Date()
	for i := range rounds {
		y, m, d := rounds[i].StartsAt.In(loc).Date()
		if y == ty && m == tm && d == td {
			return &rounds[i]
		}
	}
	return nil
}

// SelectTomorrow returns the round scheduled for tomorrow relative to now
// in loc, or nil when no round plays tomorrow.
//
// "Tomorrow" is deliberately computed in the series' timezone rather than
// the host clock: the bot typically runs on UTC machines while the page
// lists Norwegian wall-clock times, and around midnight those disagree
// about what day it is.
func SelectTomorrow(rounds []model.Round, now time.Time, loc *time.Location) *model.Round {
	if loc == nil {
		loc = time.Local
	}
	return SelectOn(rounds, now.In(loc).AddDate(0, 0, 1), loc)
}
