package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookingcalendar/internal/domain"
)

// PathID parses the positive integer path value name.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// QueryIDs reads a set of ids given as a comma list, repeated keys, or both
// (?artist_ids=1,2&artist_ids=3).
func QueryIDs(r *http.Request, name string) ([]int64, error) {
	var ids []int64
	for _, value := range r.URL.Query()[name] {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a comma-separated list of integers", name)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// QueryDate returns the query value name if it is a YYYY-MM-DD date, or "" when absent.
func QueryDate(r *http.Request, name string) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(domain.DateLayout, raw); err != nil {
		return "", fmt.Errorf("%s must be a date in YYYY-MM-DD format", name)
	}
	return raw, nil
}

// EventFilterFromQuery reads date_from, date_to, artist_ids and format_ids. It returns every
// problem found rather than stopping at the first.
func EventFilterFromQuery(r *http.Request) (domain.EventFilter, []string) {
	var filter domain.EventFilter
	var errs []string
	var err error
	if filter.DateFrom, err = QueryDate(r, "date_from"); err != nil {
		errs = append(errs, err.Error())
	}
	if filter.DateTo, err = QueryDate(r, "date_to"); err != nil {
		errs = append(errs, err.Error())
	}
	if filter.ArtistIDs, err = QueryIDs(r, "artist_ids"); err != nil {
		errs = append(errs, err.Error())
	}
	if filter.FormatIDs, err = QueryIDs(r, "format_ids"); err != nil {
		errs = append(errs, err.Error())
	}
	if filter.DateFrom != "" && filter.DateTo != "" && filter.DateFrom > filter.DateTo {
		errs = append(errs, "date_from must not be after date_to")
	}
	return filter, errs
}
