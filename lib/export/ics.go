package export

import (
	"fmt"

	"skolexport/lib/scrapers/skola24"

	ics "github.com/arran4/golang-ical"
)

// LessonsICS renders lessons as an iCalendar document. Unlike the CSV
// import table this keeps fields delimiter-safe, so it is the better
// artifact for calendar clients that accept .ics directly.
func LessonsICS(lessons []skola24.Lesson) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//skolexport//timetable//EN")

	for i, lesson := range lessons {
		event := cal.AddEvent(fmt.Sprintf(
			"%s-%d@skolexport",
			lesson.Start.Format("20060102T150405"), i,
		))
		event.SetDtStampTime(lesson.Start)
		event.SetStartAt(lesson.Start)
		event.SetEndAt(lesson.End)
		event.SetSummary(lesson.Course)
		if lesson.Teacher != "" {
			event.SetDescription(lesson.Teacher)
		}
		if lesson.Location != "" {
			event.SetLocation(lesson.Location)
		}
		if lesson.Color != "" {
			event.SetProperty(ics.ComponentProperty("COLOR"), lesson.Color)
		}
	}

	return cal.Serialize()
}
