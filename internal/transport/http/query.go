package http

import (
	"net/http"
	"strings"

	"guestcomplaints/pkg/contracts/domain"
)

// Query parameter names shared by the complaint and report endpoints.
const (
	paramMonth    = "month"
	paramLocation = "location"
	paramUnit     = "unit"
	paramTopic    = "topic"
)

// filterFromQuery reads a Filter from the query string. Month and topic may
// be repeated or comma separated: ?month=Janeiro&month=Fevereiro and
// ?month=Janeiro,Fevereiro are equivalent. Unit names can contain commas, so
// units are only ever repeated.
func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		Months:   queryList(q[paramMonth]),
		Location: strings.TrimSpace(q.Get(paramLocation)),
		Units:    trimmed(q[paramUnit]),
		Topics:   queryList(q[paramTopic]),
	}
}

func queryList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func trimmed(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
