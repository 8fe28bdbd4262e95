package format

import (
	"fmt"
	"time"
)

// Month names are fixed English regardless of host locale; the app's
// display language does not follow the device locale for dates.
var monthAbbrev = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var monthFull = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Date renders an instant as "MMM d, yyyy" (e.g. "Mar 5, 2024") in the
// instant's own location.
func Date(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", monthAbbrev[t.Month()-1], t.Day(), t.Year())
}

// DateFromMillis renders an epoch-milliseconds timestamp converted to
// the local calendar day.
func DateFromMillis(millis int64) string {
	return Date(time.UnixMilli(millis).Local())
}

// DayHeader renders a calendar day as "d MMMM yyyy" (e.g. "5 March
// 2024"), the header style for transaction day buckets older than
// yesterday.
func DayHeader(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthFull[t.Month()-1], t.Year())
}
