package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/drawcal"
)

// brazilWallFormats are the wall-clock layouts accepted for source strings
// with no explicit zone. They are interpreted as Brazil time (UTC-3).
var brazilWallFormats = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// explicitZoneFormats carry their own offset (`Z` or `±HH:MM`) and are parsed
// as given
var explicitZoneFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// ParseBrazilTime parses a timestamp string from the upstream source. If the
// string carries an explicit zone it is honored; otherwise dd/mm/yyyy
// wall-clock strings are read as Brazil time.
func ParseBrazilTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, format := range explicitZoneFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	for _, format := range brazilWallFormats {
		if t, err := time.ParseInLocation(format, s, drawcal.Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", s)
}

// ParseChosenNumbers parses a player's number picks from a delimited cell
// (e.g. "04, 12, 33" or "04-12-33")
func ParseChosenNumbers(s string) []int {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '-' || r == ' '
	})
	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

// MaskGameID masks a player identifier for logging (show first 2 and last 2
// characters)
func MaskGameID(gameID string) string {
	if len(gameID) > 4 {
		return gameID[:2] + "******" + gameID[len(gameID)-2:]
	}
	return "******"
}
