package eventbrite

import (
	"fmt"
	"time"
)

// Order represents an Eventbrite order from the v3 API.
// The nested event is populated by the expand=event query parameter.
type Order struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Created  string `json:"created,omitempty"`
	EventID  string `json:"event_id,omitempty"`
	Event    *Event `json:"event,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Event represents an Eventbrite event.
type Event struct {
	ID          string         `json:"id"`
	Name        *MultipartText `json:"name,omitempty"`
	Description *MultipartText `json:"description,omitempty"`
	URL         string         `json:"url"`
	Start       *DateTimeTZ    `json:"start,omitempty"`
	End         *DateTimeTZ    `json:"end,omitempty"`
	Venue       *Venue         `json:"venue,omitempty"`
	Status      string         `json:"status,omitempty"`
	OnlineEvent bool           `json:"online_event,omitempty"`
}

// MultipartText is Eventbrite's text/html pair.
type MultipartText struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

// DateTimeTZ is Eventbrite's timestamp triple: an IANA timezone name plus the
// instant rendered in that zone and in UTC.
type DateTimeTZ struct {
	Timezone string `json:"timezone"`
	Local    string `json:"local"`
	UTC      string `json:"utc"`
}

// Venue contains venue information for an event.
type Venue struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Address *struct {
		LocalizedAddressDisplay string `json:"localized_address_display,omitempty"`
	} `json:"address,omitempty"`
}

// Pagination is the envelope Eventbrite wraps around every list response.
type Pagination struct {
	ObjectCount  int    `json:"object_count"`
	PageNumber   int    `json:"page_number"`
	PageSize     int    `json:"page_size"`
	PageCount    int    `json:"page_count"`
	HasMoreItems bool   `json:"has_more_items"`
	Continuation string `json:"continuation,omitempty"`
}

// ordersResponse is the /users/me/orders/ response body.
type ordersResponse struct {
	Pagination Pagination `json:"pagination"`
	Orders     []Order    `json:"orders"`
}

// Eventbrite renders UTC instants as RFC3339 with a Z suffix and second
// precision, e.g. 2024-06-01T18:00:00Z.
const utcTimeLayout = "2006-01-02T15:04:05Z"

// Time parses the UTC instant of the timestamp.
func (d *DateTimeTZ) Time() (time.Time, error) {
	if d == nil || d.UTC == "" {
		return time.Time{}, fmt.Errorf("timestamp missing")
	}
	t, err := time.Parse(utcTimeLayout, d.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", d.UTC, err)
	}
	return t, nil
}

// NameText returns the plain-text event name, empty if unset.
func (e *Event) NameText() string {
	if e == nil || e.Name == nil {
		return ""
	}
	return e.Name.Text
}

// DescriptionText returns the plain-text event description, empty if unset.
func (e *Event) DescriptionText() string {
	if e == nil || e.Description == nil {
		return ""
	}
	return e.Description.Text
}

// VenueAddress returns the venue's display address, empty if the event has no
// venue (online events have none).
func (e *Event) VenueAddress() string {
	if e == nil || e.Venue == nil || e.Venue.Address == nil {
		return ""
	}
	return e.Venue.Address.LocalizedAddressDisplay
}
