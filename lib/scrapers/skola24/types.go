package skola24

import "time"

// Box is one visual layout record from the timetable renderer. Only
// boxes with Type == "Lesson" carry lesson guids; the renderer also
// emits frame and header boxes.
type Box struct {
	X           int      `json:"x"`
	Y           int      `json:"y"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	BColor      string   `json:"bColor"`
	FColor      string   `json:"fColor"`
	Id          int      `json:"id"`
	ParentId    int      `json:"parentId"`
	Type        string   `json:"type"`
	LessonGuids []string `json:"lessonGuids"`
}

// LessonInfo is one lesson record from the timetable renderer. Texts is
// positional: course name, teacher, location; trailing entries may be
// missing entirely.
type LessonInfo struct {
	GuidId          string   `json:"guidId"`
	Texts           []string `json:"texts"`
	TimeStart       string   `json:"timeStart"`
	TimeEnd         string   `json:"timeEnd"`
	DayOfWeekNumber int      `json:"dayOfWeekNumber"`
	BlockName       string   `json:"blockName"`
}

// Timetable is the raw render response for one (week, year) pair.
// Holiday weeks legitimately come back with no boxes and no lessons.
type Timetable struct {
	Boxes   []Box
	Lessons []LessonInfo
}

// Selection identifies whose timetable to render.
type Selection struct {
	UnitGuid   string
	PersonGuid string
}

// Lesson is a fully resolved timetable entry. Constructed once during
// correlation, immutable afterwards.
type Lesson struct {
	Course   string
	Teacher  string
	Location string
	Start    time.Time
	End      time.Time
	Color    string
}
