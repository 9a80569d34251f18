// Package caldav implements the calendar collaborator against a CalDAV
// server: each created entry is one VEVENT PUT into the destination
// collection, and the VEVENT UID doubles as the entry identifier.
package caldav

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"event-publisher/internal/platform/config"
	"event-publisher/internal/platform/httpclient"
	"event-publisher/internal/platform/logger"
	"event-publisher/internal/ports/calendar"
)

const prodID = "-//event-publisher//NONSGML v1.0//EN"

type Client struct {
	http *httpclient.Client
	log  logger.Logger
}

func New(cfg config.CalDAVConfig, log logger.Logger) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, httpclient.DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("caldav: %w", err)
	}
	hc.BasicUser = cfg.Username
	hc.BasicPass = cfg.Password
	return &Client{http: hc, log: log}, nil
}

func (c *Client) CreateEntry(ctx context.Context, e calendar.Entry) (string, error) {
	return c.putEvent(ctx, e, "")
}

func (c *Client) CreateSeries(ctx context.Context, e calendar.Entry, rule string) (string, error) {
	if strings.TrimSpace(rule) == "" {
		return "", fmt.Errorf("caldav: series needs a recurrence rule")
	}
	return c.putEvent(ctx, e, rule)
}

func (c *Client) putEvent(ctx context.Context, e calendar.Entry, rule string) (string, error) {
	if strings.TrimSpace(e.CalendarID) == "" {
		return "", fmt.Errorf("caldav: empty calendar id")
	}

	uid := uuid.NewString()
	data, err := encodeEvent(uid, e, rule)
	if err != nil {
		return "", err
	}

	// If-None-Match keeps a retried PUT from silently overwriting an
	// object that already landed.
	objectURL := strings.TrimRight(e.CalendarID, "/") + "/" + uid + ".ics"
	_, _, err = c.http.Do(ctx, http.MethodPut, objectURL,
		map[string]string{"If-None-Match": "*"},
		"text/calendar; charset=utf-8", data)
	if err != nil {
		return "", fmt.Errorf("caldav: creating %s: %w", objectURL, err)
	}

	c.log.Debug("calendar object created", map[string]any{"url": objectURL})
	return uid, nil
}

func encodeEvent(uid string, e calendar.Entry, rule string) ([]byte, error) {
	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, uid)
	ev.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ev.Props.SetText(ical.PropSummary, e.Title)
	if e.Description != "" {
		ev.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		ev.Props.SetText(ical.PropLocation, e.Location)
	}
	ev.Props.SetDateTime(ical.PropDateTimeStart, e.Start)
	ev.Props.SetDateTime(ical.PropDateTimeEnd, e.End)
	if rule != "" {
		// The rule is already serialized; SetText would escape its
		// semicolons.
		prop := ical.NewProp(ical.PropRecurrenceRule)
		prop.Value = rule
		ev.Props.Set(prop)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Children = append(cal.Children, ev.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("caldav: encoding calendar object: %w", err)
	}
	return buf.Bytes(), nil
}
