// Package ical turns Eventbrite orders into an iCalendar document.
package ical

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/custodia-labs/britecal/internal/eventbrite"
	"github.com/custodia-labs/britecal/internal/logger"
)

const (
	// Filename is the suggested download name for the generated calendar.
	Filename = "eventbrite_events.ics"

	// MIMEType is the calendar content type.
	MIMEType = "text/calendar"

	productID = "-//custodia-labs//britecal//EN"
)

// FromOrders builds a calendar with one VEVENT per ticketed event across the
// given orders. Orders for the same event are deliberately not deduplicated:
// the calendar mirrors the order list. Zero orders yield a valid empty
// calendar. A malformed timestamp fails the whole build; no partial calendar
// is ever returned.
func FromOrders(orders []eventbrite.Order) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for i := range orders {
		order := &orders[i]
		if order.Event == nil {
			// The orders listing always expands the event; a missing one
			// means the event was deleted upstream. Nothing to map.
			logger.Debug("ical: order %s has no event, skipping", order.ID)
			continue
		}

		event, err := buildEvent(order)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", order.ID, err)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	return cal, nil
}

// buildEvent maps a single order's event to a VEVENT.
func buildEvent(order *eventbrite.Order) (*ical.Event, error) {
	src := order.Event

	start, err := src.Start.Time()
	if err != nil {
		return nil, fmt.Errorf("event start: %w", err)
	}
	end, err := src.End.Time()
	if err != nil {
		return nil, fmt.Errorf("event end: %w", err)
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, eventUID(order))
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, end)
	event.Props.SetText(ical.PropSummary, src.NameText())
	event.Props.SetText(ical.PropDescription, src.URL)
	if src.URL != "" {
		event.Props.SetText(ical.PropURL, src.URL)
	}
	if addr := src.VenueAddress(); addr != "" {
		event.Props.SetText(ical.PropLocation, addr)
	}

	return event, nil
}

// eventUID derives a UID unique per order-event pair. The order id is part of
// the UID because two orders for the same event both appear in the calendar.
func eventUID(order *eventbrite.Order) string {
	if order.ID == "" || order.Event.ID == "" {
		return uuid.NewString() + "@britecal"
	}
	return order.ID + "-" + order.Event.ID + "@britecal"
}

// Encode serialises the calendar.
func Encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
