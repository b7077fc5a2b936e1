package skolplattformen

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSchedule(t *testing.T) {
	const pageScope = "8a22163c-8662-4535-9050-bc5e1923df48"

	var observedScope string
	mux := http.NewServeMux()
	mux.HandleFunc("/ng/timetable/timetable-viewer/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<nova-widget scope="%s"></nova-widget>
		</body></html>`, pageScope)
	})
	mux.HandleFunc("/ng/api/services/skola24/get/personal/timetables", func(w http.ResponseWriter, r *http.Request) {
		observedScope = r.Header.Get("X-Scope")
		fmt.Fprint(w, `{
			"data": {
				"getPersonalTimetablesResponse": {
					"studentTimetables": [{
						"firstName": "Anna",
						"lastName": "Svensson",
						"personGuid": "person-1",
						"unitGuid": "unit-1"
					}]
				}
			}
		}`)
	})
	portal := httptest.NewServer(mux)
	defer portal.Close()

	client := newTestClient(t, portal)
	session, err := client.OpenSchedule(context.Background())
	require.NoError(t, err)

	// the scope handed out is the one that actually crossed the wire
	require.Equal(t, pageScope, observedScope)
	require.Equal(t, observedScope, session.Scope)
	require.Equal(t, "unit-1", session.Selection.UnitGuid)
	require.Equal(t, "person-1", session.Selection.PersonGuid)
	require.Equal(t, "Anna", session.Student.FirstName)
}

func TestOpenScheduleNoTimetables(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ng/timetable/timetable-viewer/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><nova-widget scope="s-1"></nova-widget></body></html>`)
	})
	mux.HandleFunc("/ng/api/services/skola24/get/personal/timetables", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"getPersonalTimetablesResponse":{"studentTimetables":[]}}}`)
	})
	portal := httptest.NewServer(mux)
	defer portal.Close()

	client := newTestClient(t, portal)
	_, err := client.OpenSchedule(context.Background())
	require.Error(t, err)
}
