package render

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"socialpost/internal/types"
)

// DayGroup is the posts generated on one calendar day.
type DayGroup struct {
	Day   time.Time // midnight in the grouping location
	Posts []types.Post
}

// GroupByDay buckets posts by the calendar day of DateGenerated in loc. Groups
// and the posts inside them are ordered newest first; posts with equal
// timestamps keep their stored order. Posts without a date land in a final
// group with a zero Day.
func GroupByDay(posts []types.Post, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}

	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b types.Post) int {
		return b.DateGenerated.Compare(a.DateGenerated)
	})

	var groups []DayGroup
	for _, p := range sorted {
		var day time.Time
		if !p.DateGenerated.IsZero() {
			t := p.DateGenerated.In(loc)
			day = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		}
		if n := len(groups); n > 0 && groups[n-1].Day.Equal(day) {
			groups[n-1].Posts = append(groups[n-1].Posts, p)
			continue
		}
		groups = append(groups, DayGroup{Day: day, Posts: []types.Post{p}})
	}
	return groups
}

// History renders a brand's posts grouped by generation day.
func (r *Renderer) History(b types.Brand) string {
	if len(b.Posts) == 0 {
		return r.styles.Muted.Render(fmt.Sprintf("%s has no posts yet.", b.Name)) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(r.styles.Title.Render(fmt.Sprintf("%s · content history", b.Name)))
	sb.WriteString("\n")
	for _, g := range GroupByDay(b.Posts, r.loc) {
		label := "Undated"
		if !g.Day.IsZero() {
			label = g.Day.Format("Monday, 2 January 2006")
		}
		sb.WriteString("\n")
		sb.WriteString(r.styles.Bold.Render(fmt.Sprintf("%s (%d)", label, len(g.Posts))))
		sb.WriteString("\n")
		sb.WriteString(r.Posts(g.Posts))
	}
	return sb.String()
}
