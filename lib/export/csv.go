package export

import (
	"strings"

	"skolexport/lib/scrapers/skola24"
)

const csvHeader = "Subject,Start Date,Start Time,End Date,End Time,All Day Event,Description,Location,Private,Recurring"

// the short-date / simple-time shapes the calendar import template expects
const (
	DateFormat = "1/2/2006"
	TimeFormat = "3:04 PM"
)

// LessonsCSV renders lessons into the fixed-column calendar import
// table, one row per lesson in input order.
//
// Fields are comma-joined without quoting or escaping because that is
// what the import template consumes; a course name, teacher or
// location containing a comma will corrupt its row. Known limitation.
func LessonsCSV(lessons []skola24.Lesson) string {
	rows := make([]string, 0, len(lessons)+1)
	rows = append(rows, csvHeader)

	for _, lesson := range lessons {
		rows = append(rows, strings.Join([]string{
			lesson.Course,
			lesson.Start.Format(DateFormat),
			lesson.Start.Format(TimeFormat),
			lesson.End.Format(DateFormat),
			lesson.End.Format(TimeFormat),
			"FALSE",
			lesson.Teacher,
			lesson.Location,
			"TRUE",
			"N",
		}, ","))
	}

	return strings.Join(rows, "\n")
}
