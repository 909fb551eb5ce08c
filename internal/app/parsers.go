package app

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

const (
	MinRemindMinutes = 1
	MaxRemindMinutes = 24 * 60

	defaultReportsLimit = 10
	maxReportsLimit     = 50
)

// Parser errors carry the text shown to the user.
var (
	ErrRemindUsage = errors.New("Использование: /remind <минуты> <текст>")
	ErrRemindRange = errors.New("Минуты должны быть в диапазоне 1..1440")
)

// ReportsFilter is the parsed form of a /reports command.
type ReportsFilter struct {
	ObjectCode *string
	Category   *string
	Limit      int
}

// ParseRemind parses "/remind <minutes> <text>".
func ParseRemind(text string) (int, string, error) {
	_, rest := cutToken(text)
	minutesToken, rest := cutToken(rest)
	reminder := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if minutesToken == "" || reminder == "" || !isDigits(minutesToken) {
		return 0, "", ErrRemindUsage
	}

	minutes, err := strconv.Atoi(minutesToken)
	if err != nil || minutes < MinRemindMinutes || minutes > MaxRemindMinutes {
		// Digit strings only fail Atoi on overflow, which is out of range too.
		return 0, "", ErrRemindRange
	}
	return minutes, reminder, nil
}

// ParseReportsFilter parses "/reports [object=..] [category=..] [limit=..]".
// Values containing spaces are written in double quotes, e.g.
// category="📸 Счётчики". Unknown keys are ignored; limit defaults to 10 and
// is clamped to [1, 50].
func ParseReportsFilter(text string) ReportsFilter {
	f := ReportsFilter{Limit: defaultReportsLimit}

	fields := splitArgs(text)
	if len(fields) > 0 {
		fields = fields[1:] // command itself
	}
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok || value == "" {
			continue
		}
		switch key {
		case "object":
			v := value
			f.ObjectCode = &v
		case "category":
			v := value
			f.Category = &v
		case "limit":
			if n, err := strconv.Atoi(value); err == nil {
				f.Limit = n
			}
		}
	}

	if f.Limit < 1 {
		f.Limit = 1
	}
	if f.Limit > maxReportsLimit {
		f.Limit = maxReportsLimit
	}
	return f
}

// cutToken splits off the first whitespace-delimited token.
func cutToken(s string) (token, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// splitArgs splits text on whitespace, keeping double-quoted spans together.
// The quotes themselves are dropped; an unterminated quote runs to the end.
func splitArgs(text string) []string {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range text {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				fields = append(fields, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		fields = append(fields, cur.String())
	}
	return fields
}
