package skolplattformen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"skolexport/lib/scrapers/skola24"

	"go.opentelemetry.io/otel/codes"
)

// StudentTimetable is one entry of the personal timetables metadata
// response, the identity record the render selection is built from.
type StudentTimetable struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PersonGuid  string `json:"personGuid"`
	SchoolGuid  string `json:"schoolGuid"`
	SchoolID    string `json:"schoolID"`
	TimetableID string `json:"timetableID"`
	UnitGuid    string `json:"unitGuid"`
}

type personalTimetablesResponse struct {
	Data struct {
		GetPersonalTimetablesResponse struct {
			StudentTimetables []StudentTimetable `json:"studentTimetables"`
		} `json:"getPersonalTimetablesResponse"`
	} `json:"data"`
}

// ScheduleSession is everything the extraction core needs from the
// established browser session: the captured authorization scope and
// the student's selection identity. Both are plain values, immutable
// from here on.
type ScheduleSession struct {
	Scope     string
	Selection skola24.Selection
	Student   StudentTimetable
}

func (c *Client) personalTimetables(ctx context.Context, scope string) ([]StudentTimetable, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("X-Scope", scope).
		Post(fmt.Sprintf("%s://%s/ng/api/services/skola24/get/personal/timetables", c.BaseUrl.Scheme, c.ScheduleHost))
	if err != nil {
		return nil, err
	}

	var body personalTimetablesResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		return nil, err
	}
	return body.Data.GetPersonalTimetablesResponse.StudentTimetables, nil
}

// OpenSchedule navigates into the timetable sub-application and lets
// its bootstrap traffic run through the scope transport. The scope the
// session actually sent on the wire is what gets handed to the core,
// not whatever the page claimed to embed.
func (c *Client) OpenSchedule(ctx context.Context) (ScheduleSession, error) {
	ctx, span := tracer.Start(ctx, "OpenSchedule")
	defer span.End()

	viewer := fmt.Sprintf(
		"%s://%s/ng/timetable/timetable-viewer/%s/",
		c.BaseUrl.Scheme, c.ScheduleHost, c.ScheduleHost,
	)
	doc, _, err := c.getDoc(ctx, viewer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open timetable viewer")
		return ScheduleSession{}, err
	}

	pageScope := doc.Find("nova-widget").AttrOr("scope", "")
	if pageScope == "" {
		span.SetStatus(codes.Error, "viewer page carried no scope attribute")
		return ScheduleSession{}, skola24.ErrMissingAuthorizationScope
	}

	timetables, err := c.personalTimetables(ctx, pageScope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch personal timetables")
		return ScheduleSession{}, err
	}

	// navigation is done; the metadata request above must have carried
	// the header through the transport or the session is unusable
	scope, err := c.scope.Scope()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return ScheduleSession{}, err
	}

	if len(timetables) == 0 {
		span.SetStatus(codes.Error, "no student timetables in metadata response")
		return ScheduleSession{}, fmt.Errorf("got no student timetables")
	}
	info := timetables[0]

	slog.InfoContext(
		ctx, "reading timetables",
		"first_name", info.FirstName,
		"last_name", info.LastName,
	)

	return ScheduleSession{
		Scope: scope,
		Selection: skola24.Selection{
			UnitGuid:   info.UnitGuid,
			PersonGuid: info.PersonGuid,
		},
		Student: info,
	}, nil
}
