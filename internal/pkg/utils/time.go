package utils

import "time"

// ParseTimestampOrNow parses an optional RFC3339 timestamp, defaulting to now.
func ParseTimestampOrNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// ParseFHIRInstant accepts the timestamp layouts FHIR servers emit for
// effectiveDateTime and issued fields.
func ParseFHIRInstant(value string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
