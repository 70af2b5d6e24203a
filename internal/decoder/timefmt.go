package decoder

import "time"

// localeLayout matches the en-US date-time rendering used by the explorer.
const localeLayout = "1/2/2006, 3:04:05 PM"

// InvalidDate is rendered for timestamps outside the displayable range.
const InvalidDate = "Invalid Date"

// maxDisplayMillis bounds renderable timestamps to ±100,000,000 days from the epoch.
const maxDisplayMillis = 8_640_000_000_000_000

func formatMillis(ms int64, loc *time.Location) string {
	if ms > maxDisplayMillis || ms < -maxDisplayMillis {
		return InvalidDate
	}
	return time.UnixMilli(ms).In(loc).Format(localeLayout)
}

func formatSeconds(sec uint64, loc *time.Location) string {
	if sec > maxDisplayMillis/1000 {
		return InvalidDate
	}
	return formatMillis(int64(sec)*1000, loc)
}
