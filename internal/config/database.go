// internal/config/database.go
package config

import (
	"fmt"
)

// DSN builds the SQLite connection string. WAL keeps readers from blocking
// behind the single writer; busy_timeout bounds lock waits instead of
// surfacing SQLITE_BUSY to callers.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		d.Path, d.BusyTimeout,
	)
}
