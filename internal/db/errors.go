package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the booking engine cares about.
const (
	mysqlDuplicateEntry  = 1062
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// IsDuplicateKey reports whether err is a unique-index violation.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// IsTransient reports whether err is a deadlock or lock-wait timeout, i.e.
// the whole transaction may be retried from scratch by the caller.
func IsTransient(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == mysqlDeadlock || me.Number == mysqlLockWaitTimeout
}
