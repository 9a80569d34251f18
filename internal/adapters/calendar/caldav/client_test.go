package caldav

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-publisher/internal/platform/config"
	"event-publisher/internal/platform/logger"
	"event-publisher/internal/ports/calendar"
)

type capturedRequest struct {
	method string
	path   string
	body   string
	header http.Header
}

func newTestClient(t *testing.T, status int) (*Client, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.body = string(b)
		captured.header = r.Header.Clone()
		w.WriteHeader(status)
	}))
	t.Cleanup(ts.Close)

	c, err := New(config.CalDAVConfig{
		BaseURL:  ts.URL,
		Username: "robot",
		Password: "secret",
	}, logger.New(logger.Options{Level: logger.Error}))
	require.NoError(t, err)
	return c, captured
}

func testEntry() calendar.Entry {
	return calendar.Entry{
		CalendarID:  "/calendars/building",
		Title:       "Potluck",
		Description: "Monthly potluck",
		Location:    "Main Hall",
		Start:       time.Date(2026, time.January, 13, 18, 0, 0, 0, time.UTC),
		End:         time.Date(2026, time.January, 13, 20, 0, 0, 0, time.UTC),
	}
}

func TestCreateEntry(t *testing.T) {
	c, captured := newTestClient(t, http.StatusCreated)

	id, err := c.CreateEntry(context.Background(), testEntry())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Equal(t, http.MethodPut, captured.method)
	assert.Equal(t, "/calendars/building/"+id+".ics", captured.path)
	assert.Equal(t, "*", captured.header.Get("If-None-Match"))

	assert.Contains(t, captured.body, "BEGIN:VEVENT")
	assert.Contains(t, captured.body, "UID:"+id)
	assert.Contains(t, captured.body, "SUMMARY:Potluck")
	assert.Contains(t, captured.body, "LOCATION:Main Hall")
	assert.NotContains(t, captured.body, "RRULE")
}

func TestCreateSeries(t *testing.T) {
	c, captured := newTestClient(t, http.StatusCreated)

	rule := "FREQ=MONTHLY;BYSETPOS=2;BYDAY=TU;WKST=SU;UNTIL=20261231T235959Z"
	id, err := c.CreateSeries(context.Background(), testEntry(), rule)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Contains(t, captured.body, "RRULE:"+rule)
}

func TestCreateSeries_RequiresRule(t *testing.T) {
	c, _ := newTestClient(t, http.StatusCreated)

	_, err := c.CreateSeries(context.Background(), testEntry(), "  ")
	assert.Error(t, err)
}

func TestCreateEntry_ServerError(t *testing.T) {
	c, _ := newTestClient(t, http.StatusForbidden)

	_, err := c.CreateEntry(context.Background(), testEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestCreateEntry_EmptyCalendarID(t *testing.T) {
	c, captured := newTestClient(t, http.StatusCreated)

	e := testEntry()
	e.CalendarID = ""
	_, err := c.CreateEntry(context.Background(), e)
	require.Error(t, err)
	assert.Empty(t, captured.method, "no request should have been sent")
}

// Distinct calls must mint distinct identifiers, otherwise the second PUT
// with If-None-Match would collide.
func TestCreateEntry_UniqueIDs(t *testing.T) {
	c, _ := newTestClient(t, http.StatusCreated)

	id1, err := c.CreateEntry(context.Background(), testEntry())
	require.NoError(t, err)
	id2, err := c.CreateEntry(context.Background(), testEntry())
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

var _ calendar.Calendar = (*Client)(nil)
