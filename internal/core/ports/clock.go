package ports

import "time"

// Clock supplies the current time to command handlers. Domain operations
// take time as an argument and never read the wall clock themselves.
type Clock interface {
	Now() time.Time
}
