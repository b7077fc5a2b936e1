package snapshots

import (
	"fmt"

	"skolexport/lib/scrapers/skola24"
)

// WeekDiff describes how one week's lessons changed between the stored
// snapshot and a fresh extraction.
type WeekDiff struct {
	Week    int
	Added   []skola24.Lesson
	Removed []skola24.Lesson
}

func (d WeekDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

func lessonKey(l skola24.Lesson) string {
	return fmt.Sprintf(
		"%s|%s|%s|%d|%d|%s",
		l.Course, l.Teacher, l.Location,
		l.Start.Unix(), l.End.Unix(), l.Color,
	)
}

// Diff compares a stored week against a fresh one. A lesson counts as
// changed when any field differs, which shows up as one removal plus
// one addition.
func Diff(week int, stored, fresh []skola24.Lesson) WeekDiff {
	storedKeys := make(map[string]bool, len(stored))
	for _, l := range stored {
		storedKeys[lessonKey(l)] = true
	}
	freshKeys := make(map[string]bool, len(fresh))
	for _, l := range fresh {
		freshKeys[lessonKey(l)] = true
	}

	d := WeekDiff{Week: week}
	for _, l := range fresh {
		if !storedKeys[lessonKey(l)] {
			d.Added = append(d.Added, l)
		}
	}
	for _, l := range stored {
		if !freshKeys[lessonKey(l)] {
			d.Removed = append(d.Removed, l)
		}
	}
	return d
}
