package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pure input predicates used by the conversation flows. Each helper takes
// the raw user text and returns the parsed value plus ok, so callers can
// re-prompt without caring why the input was bad.

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	urlRe   = regexp.MustCompile(`^(https?://)?([\w-]+\.)+[\w-]+(/[\w\-./?%&=@]*)?$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, emailRe.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	return s, phoneRe.MatchString(s)
}

func URL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, urlRe.MatchString(s)
}

// FullName requires at least two non-space characters.
func FullName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 2
}

// Age accepts whole years in [18, 100].
func Age(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, n >= 18 && n <= 100
}

// DateOfBirth parses YYYY-MM-DD and requires the resulting age to be
// within [18, 100] as of now.
func DateOfBirth(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	years := yearsSince(t, time.Now())
	return t, years >= 18 && years <= 100
}

func yearsSince(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years
}

// Height accepts meters in [1.00, 2.50].
func Height(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, v >= 1.0 && v <= 2.5
}

// Weight accepts kilograms in [30, 200].
func Weight(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, v >= 30 && v <= 200
}

// FTNumber is a bank transfer reference, anything of 3+ characters.
func FTNumber(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= 3
}

// TelegramUsername accepts @handle or handle, 5 to 32 word characters.
func TelegramUsername(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "@")
	if len(s) < 5 || len(s) > 32 {
		return "", false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return "", false
		}
	}
	return "@" + s, true
}

// SocialLinks parses a comma separated list of profile URLs. One bad
// URL rejects the whole submission.
func SocialLinks(s string) ([]string, bool) {
	var links []string
	for _, p := range strings.Split(s, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		link, ok := URL(p)
		if !ok {
			return nil, false
		}
		links = append(links, link)
	}
	if len(links) == 0 {
		return nil, false
	}
	return links, true
}

// Selection parses a comma separated list of 1-based indices against the
// given options. Any index outside [1, len(options)], any non-numeric
// token and any empty result rejects the whole submission. Duplicates
// collapse, order of first mention is kept.
func Selection(s string, options []string) ([]string, bool) {
	parts := strings.Split(s, ",")
	seen := make(map[int]bool, len(parts))
	var picked []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > len(options) {
			return nil, false
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		picked = append(picked, options[n-1])
	}
	if len(picked) == 0 {
		return nil, false
	}
	return picked, true
}

// One parses a single 1-based index against the given options.
func One(s string, options []string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > len(options) {
		return "", false
	}
	return options[n-1], true
}

// NumberedList renders options as the "1. ..." menu shown before a
// Selection or One prompt.
func NumberedList(options []string) string {
	var b strings.Builder
	for i, o := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, o)
	}
	return strings.TrimRight(b.String(), "\n")
}
