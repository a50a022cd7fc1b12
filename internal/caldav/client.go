// Package caldav publishes holiday sets to a CalDAV calendar collection.
package caldav

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-webdav/caldav"
	"github.com/pkg/errors"

	"github.com/klabast/wb-services/feriados/internal/app"
	"github.com/klabast/wb-services/feriados/internal/holidays"
	"github.com/klabast/wb-services/feriados/internal/log"
	"github.com/klabast/wb-services/feriados/internal/metrics"
)

// Client PUTs one calendar object per holiday. Objects are named after the
// event UID, so publishing the same year twice replaces instead of duplicating.
type Client struct {
	baseURL      string
	username     string
	password     string
	calendarPath string
	client       *caldav.Client
	now          func() time.Time
}

// NewClient creates a new CalDAV client
func NewClient(baseURL, username, password, calendarPath string) *Client {
	return &Client{
		baseURL:      baseURL,
		username:     username,
		password:     password,
		calendarPath: calendarPath,
		now:          time.Now,
	}
}

// CalendarPath is the collection events are written to
func (c *Client) CalendarPath() string {
	return c.calendarPath
}

// connect establishes connection to CalDAV server
func (c *Client) connect() (*caldav.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username: c.username,
			password: c.password,
		},
		Timeout: 30 * time.Second,
	}

	client, err := caldav.NewClient(httpClient, c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to CalDAV")
	}

	c.client = client
	return client, nil
}

// basicAuthTransport adds Basic Auth to HTTP requests
type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.username != "" {
		req.SetBasicAuth(t.username, t.password)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// EventPath is where the object for e lives inside the calendar collection
func (c *Client) EventPath(e holidays.Entry) string {
	p := c.calendarPath
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p + app.EventUID(e) + ".ics"
}

// Publish writes every holiday of set and returns the number of events
// stored. It stops at the first failed PUT.
func (c *Client) Publish(ctx context.Context, set *holidays.Set) (int, error) {
	if c.calendarPath == "" {
		return 0, errors.New("calendar path not specified")
	}

	client, err := c.connect()
	if err != nil {
		metrics.CalDAVPublications.WithLabelValues("error").Inc()
		return 0, err
	}

	stamp := c.now()
	published := 0
	for _, e := range set.Entries() {
		if err := ctx.Err(); err != nil {
			return published, err
		}

		cal := app.NewICSCalendar("Feriados nacionais")
		event := app.HolidayEvent(e, stamp)
		cal.Children = append(cal.Children, event.Component)

		if _, err := client.PutCalendarObject(ctx, c.EventPath(e), cal); err != nil {
			metrics.CalDAVPublications.WithLabelValues("error").Inc()
			return published, errors.Wrapf(err, "put %s", e.Key())
		}
		published++
	}

	metrics.CalDAVPublications.WithLabelValues("ok").Inc()
	log.Info("Published %d holidays of %d to %s", published, set.Year(), c.calendarPath)
	return published, nil
}
