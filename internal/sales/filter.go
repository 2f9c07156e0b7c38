package sales

import (
	"time"

	"retail-edge-pos/internal/apperr"
	"retail-edge-pos/internal/models"
)

const dateLayout = "2006-01-02"

// FilterSalesByRange keeps sales dated within [from, to]. A zero bound is open.
func FilterSalesByRange(sales []models.Sale, from, to time.Time) []models.Sale {
	out := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		d := s.SaleDate()
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// TodayRange is the calendar day containing now, in now's location, as inclusive bounds.
func TodayRange(now time.Time) (from, to time.Time) {
	y, m, d := now.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// FilterToday keeps sales made on the same calendar day as now, in now's location.
func FilterToday(sales []models.Sale, now time.Time) []models.Sale {
	from, to := TodayRange(now)
	return FilterSalesByRange(sales, from, to)
}

// ParseRange reads from/to query values. Plain dates are taken in loc and a plain
// "to" date covers the whole day. Empty values give open bounds.
func ParseRange(fromStr, toStr string, loc *time.Location) (from, to time.Time, err error) {
	from, _, err = parseBound(fromStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, dateOnly, err := parseBound(toStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if dateOnly {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, apperr.Validation("'to' must not be before 'from'")
	}
	return from, to, nil
}

func parseBound(s string, loc *time.Location) (time.Time, bool, error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, apperr.Validation("Dates must be YYYY-MM-DD or RFC3339")
}
