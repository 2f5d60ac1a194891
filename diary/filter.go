package diary

import "time"

type (
	// DateFilter is a tagged restriction on an entry's creation date
	// (date component only). The zero value filters nothing.
	DateFilter struct {
		kind filterKind
		from time.Time
		to   time.Time
	}

	filterKind int
)

const (
	filterNone filterKind = iota
	filterSingle
	filterRange
)

// DateLayout is the calendar-date encoding used by filters and by the
// date_from/date_to boundary parameters.
const DateLayout = "2006-01-02"

// NoFilter matches every creation date.
func NoFilter() DateFilter {
	return DateFilter{}
}

// SingleDate matches entries created on exactly that calendar date.
func SingleDate(d time.Time) DateFilter {
	return DateFilter{kind: filterSingle, from: d}
}

// DateRange matches entries created between from and to, inclusive on
// both ends.
func DateRange(from, to time.Time) DateFilter {
	return DateFilter{kind: filterRange, from: from, to: to}
}

// clause maps the filter to the predicate fragment appended to the base
// user_id query, plus its bound arguments. Keeping this in one place keeps
// query text out of the call sites.
func (f DateFilter) clause() (string, []interface{}) {
	switch f.kind {
	case filterSingle:
		return ` and DATE(created_at) = ?`, []interface{}{f.from.Format(DateLayout)}
	case filterRange:
		return ` and DATE(created_at) between ? and ?`, []interface{}{f.from.Format(DateLayout), f.to.Format(DateLayout)}
	}
	return "", nil
}
