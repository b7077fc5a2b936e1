package skola24

import (
	"fmt"
	"strings"
)

// teacher slot override for lunch entries, carried over from the
// upstream data-quality convention
const LunchNotice = "https://skolorna.com"

// CorrelateLessons joins the layout boxes and lesson records of one
// render response into resolved Lessons, in lessonInfo order. A box is
// keyed by the first guid it lists; when two qualifying boxes claim
// the same guid the later one wins. A lesson whose guid has no box is
// an error, never a silently defaulted color.
func CorrelateLessons(t Timetable, week, year int) ([]Lesson, error) {
	boxes := make(map[string]Box, len(t.Boxes))
	for _, b := range t.Boxes {
		if b.Type != "Lesson" || len(b.LessonGuids) == 0 {
			continue
		}
		boxes[b.LessonGuids[0]] = b
	}

	lessons := make([]Lesson, 0, len(t.Lessons))
	for _, info := range t.Lessons {
		box, ok := boxes[info.GuidId]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCorrelationMissing, info.GuidId)
		}

		var course, teacher, location string
		if len(info.Texts) > 0 {
			course = info.Texts[0]
		}
		if len(info.Texts) > 1 {
			teacher = info.Texts[1]
		}
		if len(info.Texts) > 2 {
			location = info.Texts[2]
		}
		if strings.Contains(strings.ToLower(course), "lunch") {
			teacher = LunchNotice
		}

		start, err := ResolveWeekTime(week, year, info.DayOfWeekNumber, info.TimeStart)
		if err != nil {
			return nil, fmt.Errorf("lesson %s: %w", info.GuidId, err)
		}
		end, err := ResolveWeekTime(week, year, info.DayOfWeekNumber, info.TimeEnd)
		if err != nil {
			return nil, fmt.Errorf("lesson %s: %w", info.GuidId, err)
		}

		lessons = append(lessons, Lesson{
			Course:   course,
			Teacher:  teacher,
			Location: location,
			Start:    start,
			End:      end,
			Color:    box.BColor,
		})
	}

	return lessons, nil
}
