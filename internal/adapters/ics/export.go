package ics

import (
	"fmt"
	"time"

	"bookingcalendar/internal/domain"

	ical "github.com/arran4/golang-ical"
)

// DefaultProductID is the PRODID written when none is configured.
const DefaultProductID = "-//bookingcalendar//events//EN"

type exporter struct {
	productID string
	uidDomain string
	now       func() time.Time
}

// NewExporter returns a domain.CalendarExporter that writes one all-day VEVENT per event.
// uidDomain is the right-hand side of every UID, e.g. "bookings.example.com".
func NewExporter(productID, uidDomain string) domain.CalendarExporter {
	if productID == "" {
		productID = DefaultProductID
	}
	if uidDomain == "" {
		uidDomain = "bookingcalendar"
	}
	return &exporter{productID: productID, uidDomain: uidDomain, now: time.Now}
}

// Export skips events whose date does not parse; they cannot be placed on a calendar.
func (x *exporter) Export(events []*domain.Event, formatNames map[int64]string) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(x.productID)

	for _, e := range events {
		day, err := time.Parse(domain.DateLayout, e.Date)
		if err != nil {
			continue
		}
		ve := cal.AddEvent(fmt.Sprintf("event-%d@%s", e.ID, x.uidDomain))
		stamp := e.LastModified
		if stamp.IsZero() {
			stamp = x.now().UTC()
		}
		ve.SetDtStampTime(stamp)
		ve.SetModifiedAt(stamp)
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ve.SetSummary(e.Title)
		ve.SetStatus(objectStatus(e.Status))
		if e.Notes != nil && *e.Notes != "" {
			ve.SetDescription(*e.Notes)
		}
		if e.FormatID != nil {
			if name, ok := formatNames[*e.FormatID]; ok {
				ve.SetProperty(ical.ComponentPropertyCategories, name)
			}
		}
	}
	return cal.Serialize(), nil
}

func objectStatus(s domain.EventStatus) ical.ObjectStatus {
	switch s {
	case domain.StatusConfirmed:
		return ical.ObjectStatusConfirmed
	case domain.StatusCancelled:
		return ical.ObjectStatusCancelled
	default:
		return ical.ObjectStatusTentative
	}
}
