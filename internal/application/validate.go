package application

import "time"

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func validDateValue(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

func validClockValue(value string) bool {
	_, err := time.Parse(clockLayout, value)
	return err == nil
}

func parseDateValue(value string) (time.Time, bool) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
