package visitor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Values encodes q as URL query parameters for the visitors API.
func (q Query) Values() url.Values {
	v := url.Values{}
	if len(q.Fields) > 0 {
		names := make([]string, len(q.Fields))
		for i, f := range q.Fields {
			names[i] = string(f)
		}
		v.Set("fields", strings.Join(names, ","))
	}
	if q.Expand != "" {
		v.Set("expand", q.Expand)
	}
	if q.Where.StatusActive() {
		v.Set("status", q.Where.Status)
	}
	if !q.Where.Start.IsZero() {
		v.Set("start", q.Where.Start.String())
	}
	if !q.Where.End.IsZero() {
		v.Set("end", q.Where.End.String())
	}
	if s := strings.TrimSpace(q.Where.Search); s != "" {
		v.Set("search", s)
	}
	if q.OrderBy.Field != "" {
		v.Set("order", string(q.OrderBy.Field))
		if q.OrderBy.Desc {
			v.Set("desc", "true")
		}
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ParseCriteria reads filter criteria from status, start, end and search
// parameters.
func ParseCriteria(v url.Values) (Criteria, error) {
	start, err := ParseDate(v.Get("start"))
	if err != nil {
		return Criteria{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseDate(v.Get("end"))
	if err != nil {
		return Criteria{}, fmt.Errorf("end: %w", err)
	}
	return Criteria{
		Status: strings.TrimSpace(v.Get("status")),
		Start:  start,
		End:    end,
		Search: strings.TrimSpace(v.Get("search")),
	}, nil
}

// ParseQuery decodes URL query parameters produced by Query.Values.
func ParseQuery(v url.Values) (Query, error) {
	where, err := ParseCriteria(v)
	if err != nil {
		return Query{}, err
	}
	q := Query{Expand: v.Get("expand"), Where: where}

	if fields := strings.TrimSpace(v.Get("fields")); fields != "" {
		for _, name := range strings.Split(fields, ",") {
			q.Fields = append(q.Fields, Field(strings.TrimSpace(name)))
		}
	}
	if order := v.Get("order"); order != "" {
		q.OrderBy = Order{Field: Field(order)}
		if desc := v.Get("desc"); desc != "" {
			q.OrderBy.Desc, err = strconv.ParseBool(desc)
			if err != nil {
				return Query{}, fmt.Errorf("desc: %w", err)
			}
		}
	}
	if limit := v.Get("limit"); limit != "" {
		q.Limit, err = strconv.Atoi(limit)
		if err != nil {
			return Query{}, fmt.Errorf("limit: %w", err)
		}
	}

	return q, q.Validate()
}
