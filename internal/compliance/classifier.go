package compliance

import "time"

// Result is the outcome of classifying one course record.
type Result struct {
	Status  string
	GapType GapType
	Expiry  *time.Time
}

// Classify derives gap type and display status from a normalized completion
// date, the course validity window and the to-be-expire horizon. When the
// completion date and the stored label disagree, the date wins: a record
// whose computed expiry is in the past is Expired no matter what the label
// says. The reference time is passed in so callers and tests share one
// definition of "today".
func Classify(completed *time.Time, validityMonths, horizonDays int, rawLabel string, at time.Time) Result {
	label := NormalizeLabel(rawLabel)
	today := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)

	if completed != nil {
		expiry := completed.AddDate(0, validityMonths, 0)
		res := Result{Expiry: &expiry}

		switch {
		case expiry.Before(today):
			res.Status = StatusExpired
			res.GapType = GapExpired
		case daysBetween(today, expiry) <= horizonDays:
			res.Status = StatusToBe
			res.GapType = GapToBe
		default:
			res.Status = StatusCurrent
			res.GapType = GapOK
		}
		return res
	}

	// No usable completion date: the normalized label drives the gap.
	switch label {
	case StatusExpired:
		return Result{Status: StatusExpired, GapType: GapExpired}
	case StatusToBe:
		return Result{Status: StatusToBe, GapType: GapToBe}
	case StatusCurrent:
		// Current with no date is displayed without a completion date.
		return Result{Status: StatusCurrent, GapType: GapOK}
	case StatusNA, StatusNotTaken:
		return Result{Status: StatusNotTaken, GapType: GapInitial}
	default:
		return Result{Status: label, GapType: GapNA}
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
