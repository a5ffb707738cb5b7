package facet

import "time"

func currentYear() int {
	return time.Now().UTC().Year()
}
