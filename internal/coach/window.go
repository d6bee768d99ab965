package coach

import "time"

// Window is the trailing time span an analysis covers. Cutoff is inclusive:
// a transaction stamped exactly at the cutoff second is inside the window.
type Window struct {
	Months int
	Label  string
	Cutoff int64
}

// monthSeconds approximates one month as 30 days, matching how the analysis
// periods are presented to users.
const monthSeconds = 30 * 24 * 60 * 60

// DefaultPeriod is used when the caller omits or mistypes the period.
const DefaultPeriod = "3m"

// supportedPeriods maps the period presets the API accepts to month counts.
// Longer windows do not fit inside the explorer's free-tier page cap.
var supportedPeriods = map[string]int{
	"2m": 2,
	"3m": 3,
}

// NewWindow derives the analysis window for a period preset at the given
// instant. Unsupported presets quietly fall back to the default.
func NewWindow(period string, now time.Time) Window {
	months, ok := supportedPeriods[period]
	if !ok {
		months = supportedPeriods[DefaultPeriod]
	}

	label := "3 months"
	if months == 2 {
		label = "2 months"
	}

	return Window{
		Months: months,
		Label:  label,
		Cutoff: now.Unix() - int64(months)*monthSeconds,
	}
}
