package skola24

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ng/api/get/timetable/render/key", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-scope", r.Header.Get("X-Scope"))
		w.Write([]byte(`{"data":{"key":"render-key-1"}}`))
	}))
	defer ts.Close()

	client, err := NewClient(ClientOptions{BaseUrl: ts.URL, Scope: "test-scope"})
	require.NoError(t, err)

	key, err := client.RenderKey(context.Background())
	require.NoError(t, err)
	require.Equal(t, "render-key-1", key)
}

func TestRenderKeyMissing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer ts.Close()

	client, err := NewClient(ClientOptions{BaseUrl: ts.URL, Scope: "test-scope"})
	require.NoError(t, err)

	_, err = client.RenderKey(context.Background())
	require.ErrorIs(t, err, ErrRenderKeyFetch)
}

func TestRenderTimetable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ng/api/render/timetable", r.URL.Path)
		require.Equal(t, "test-scope", r.Header.Get("X-Scope"))

		var req map[string]any
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		require.Equal(t, "key-1", req["renderKey"])
		require.Equal(t, float64(33), req["week"])
		require.Equal(t, float64(2021), req["year"])
		require.Equal(t, "unit-guid", req["unitGuid"])
		require.Equal(t, "person-guid", req["selection"])
		require.Equal(t, float64(732), req["width"])
		require.Equal(t, float64(550), req["height"])
		require.Equal(t, float64(5), req["selectionType"])
		require.Equal(t, true, req["privateSelectionMode"])

		w.Write([]byte(`{
			"error": null,
			"data": {
				"boxList": [
					{"type":"Lesson","bColor":"#fff","lessonGuids":["a"]}
				],
				"lessonInfo": [
					{"guidId":"a","texts":["Math"],"dayOfWeekNumber":1,"timeStart":"08:00:00","timeEnd":"09:00:00"}
				]
			}
		}`))
	}))
	defer ts.Close()

	client, err := NewClient(ClientOptions{BaseUrl: ts.URL, Scope: "test-scope"})
	require.NoError(t, err)

	tt, err := client.RenderTimetable(context.Background(), "key-1", 33, 2021, Selection{
		UnitGuid:   "unit-guid",
		PersonGuid: "person-guid",
	})
	require.NoError(t, err)
	require.Len(t, tt.Boxes, 1)
	require.Equal(t, "#fff", tt.Boxes[0].BColor)
	require.Len(t, tt.Lessons, 1)
	require.Equal(t, "a", tt.Lessons[0].GuidId)
}

func TestRenderTimetableRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid render key"},"data":{}}`))
	}))
	defer ts.Close()

	client, err := NewClient(ClientOptions{BaseUrl: ts.URL, Scope: "test-scope"})
	require.NoError(t, err)

	_, err = client.RenderTimetable(context.Background(), "stale", 33, 2021, Selection{})
	require.ErrorIs(t, err, ErrRenderRejected)
	require.ErrorContains(t, err, "invalid render key")
}

func TestRenderTimetableEmptyWeek(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":null,"data":{"boxList":null,"lessonInfo":null}}`))
	}))
	defer ts.Close()

	client, err := NewClient(ClientOptions{BaseUrl: ts.URL, Scope: "test-scope"})
	require.NoError(t, err)

	tt, err := client.RenderTimetable(context.Background(), "key", 28, 2021, Selection{})
	require.NoError(t, err)
	require.Empty(t, tt.Boxes)
	require.Empty(t, tt.Lessons)

	lessons, err := CorrelateLessons(tt, 28, 2021)
	require.NoError(t, err)
	require.Empty(t, lessons)
}

func TestFetchWeeksEndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ng/api/get/timetable/render/key":
			w.Write([]byte(`{"data":{"key":"k"}}`))
		case "/ng/api/render/timetable":
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req)
			week := int(req["week"].(float64))
			if week == 29 {
				// holiday week
				w.Write([]byte(`{"error":null,"data":{"boxList":null,"lessonInfo":null}}`))
				return
			}
			w.Write([]byte(`{
				"error": null,
				"data": {
					"boxList": [{"type":"Lesson","bColor":"#0f0","lessonGuids":["g"]}],
					"lessonInfo": [{"guidId":"g","texts":["Chemistry"],"dayOfWeekNumber":2,"timeStart":"10:00:00","timeEnd":"11:00:00"}]
				}
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	client, err := NewClient(ClientOptions{BaseUrl: ts.URL, Scope: "test-scope"})
	require.NoError(t, err)

	results := client.FetchWeeks(context.Background(), 2021, Selection{}, []int{30, 29, 28})
	require.Len(t, results, 3)

	lessons, err := Flatten(results)
	require.NoError(t, err)
	// week 29 is empty, the other two carry one lesson each
	require.Len(t, lessons, 2)
	require.Equal(t, "Chemistry", lessons[0].Course)
}
