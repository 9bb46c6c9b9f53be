// Package extract pulls structured values (dates, times, ratings, order ids)
// out of free-form utterances.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var (
	isoDatePattern   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDayPattern  = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(st|nd|rd|th)?\b`)
	dayMonthPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)?\s+(of\s+)?(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`)
	weekdayPattern   = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	meridiemPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})(?::([0-5]\d))?\s*([ap])\.?\s?m\b\.?`)
	clockPattern     = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	atHourPattern    = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(\s*o'?clock)?\b(\s*\w+)?`)
	outOfFivePattern = regexp.MustCompile(`(?i)\b([0-5])\s*(?:/|out\s+of)\s*5\b`)
	starsPattern     = regexp.MustCompile(`(?i)\b([0-5]|zero|one|two|three|four|five)[\s-]*stars?\b`)
	ratePattern      = regexp.MustCompile(`(?i)\brat(?:e|ing)\b\D{0,20}?\b([1-5])\b`)
	orderIDPattern   = regexp.MustCompile(`(?i)\bORD-?([0-9A-F]{6})\b`)
	emailPattern     = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

var ratingWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
}

// Date resolves the first date mentioned in text against now and returns it
// as YYYY-MM-DD. Relative words win over absolute dates.
func Date(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case strings.Contains(lower, "day after tomorrow"):
		return today.AddDate(0, 0, 2).Format(isoDate), true
	case strings.Contains(lower, "tomorrow"):
		return today.AddDate(0, 0, 1).Format(isoDate), true
	case strings.Contains(lower, "today") || strings.Contains(lower, "tonight"):
		return today.Format(isoDate), true
	}

	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse(isoDate, m[0]); err == nil {
			return d.Format(isoDate), true
		}
	}

	for _, m := range monthDayPattern.FindAllStringSubmatchIndex(text, -1) {
		month, day, suffix := group(text, m, 1), group(text, m, 2), group(text, m, 3)
		if bareMay(text, m[2], month, suffix != "") {
			continue
		}
		if d, ok := monthDay(month, day, today); ok {
			return d, true
		}
	}
	for _, m := range dayMonthPattern.FindAllStringSubmatchIndex(text, -1) {
		day, month := group(text, m, 1), group(text, m, 4)
		if bareMay(text, m[8], month, group(text, m, 2) != "" || group(text, m, 3) != "") {
			continue
		}
		if d, ok := monthDay(month, day, today); ok {
			return d, true
		}
	}

	if m := weekdayPattern.FindStringSubmatch(lower); m != nil {
		return NextWeekday(today, weekdays[m[1]]).Format(isoDate), true
	}

	return "", false
}

// NextWeekday is the next occurrence of day after from; asking for today's
// weekday gives the same day next week.
func NextWeekday(from time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(from.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return from.AddDate(0, 0, delta)
}

func group(text string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}

// bareMay reports whether "may" at offset start is the verb rather than the
// month. Without an ordinal or "of" it counts as the month only when written
// "May" mid-sentence.
func bareMay(text string, start int, word string, marked bool) bool {
	if !strings.EqualFold(word, "may") || marked {
		return false
	}
	if word != "May" {
		return true
	}
	before := strings.TrimRight(text[:start], " \t")
	return before == "" || strings.HasSuffix(before, ".") || strings.HasSuffix(before, "?") || strings.HasSuffix(before, "!")
}

// monthDay builds a date in the current year. Impossible days (Feb 30) fail.
func monthDay(monthName, dayText string, today time.Time) (string, bool) {
	month, ok := months[strings.ToLower(monthName)[:3]]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}
	d := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
	if d.Month() != month {
		return "", false
	}
	return d.Format(isoDate), true
}

// Time returns the first clock time in text as 24-hour HH:MM.
func Time(text string) (string, bool) {
	if m := meridiemPattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour >= 1 && hour <= 12 {
			pm := strings.EqualFold(m[3], "p")
			switch {
			case pm && hour != 12:
				hour += 12
			case !pm && hour == 12:
				hour = 0
			}
			return formatClock(hour, minute), true
		}
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return formatClock(hour, minute), true
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "noon"):
		return "12:00", true
	case strings.Contains(lower, "midnight"):
		return "00:00", true
	}

	for _, m := range atHourPattern.FindAllStringSubmatch(text, -1) {
		next := strings.ToLower(strings.TrimSpace(m[3]))
		if strings.HasPrefix(next, "star") || strings.HasPrefix(next, "people") || strings.HasPrefix(next, "person") || strings.HasPrefix(next, "guest") {
			continue
		}
		hour, _ := strconv.Atoi(m[1])
		if hour > 23 {
			continue
		}
		// A bare hour inside 1-7 is read as business hours in the afternoon.
		if hour >= 1 && hour <= 7 {
			hour += 12
		}
		return formatClock(hour, 0), true
	}

	return "", false
}

func formatClock(hour, minute int) string {
	return time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC).Format("15:04")
}

// Rating finds a 1-5 rating ("4 stars", "four stars", "4/5", "rate it 4").
// found is false when nothing matched and the default of 5 was used.
func Rating(text string) (rating int, found bool) {
	if m := outOfFivePattern.FindStringSubmatch(text); m != nil {
		return clampRating(m[1]), true
	}
	if m := starsPattern.FindStringSubmatch(text); m != nil {
		return clampRating(m[1]), true
	}
	if m := ratePattern.FindStringSubmatch(text); m != nil {
		return clampRating(m[1]), true
	}
	return 5, false
}

func clampRating(token string) int {
	n, ok := ratingWords[strings.ToLower(token)]
	if !ok {
		n, _ = strconv.Atoi(token)
	}
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// OrderID finds an order reference and returns it in canonical ORD-XXXXXX form.
func OrderID(text string) (string, bool) {
	m := orderIDPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return "ORD-" + strings.ToUpper(m[1]), true
}

// Email returns the first email address in text, lower-cased.
func Email(text string) (string, bool) {
	m := emailPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToLower(m), true
}
