// Package repository defines data access for rooms, seat layouts, users
// and refresh tokens.  The sentinel errors below let handlers tell the
// failure cases apart: ErrRoomNotFound maps to 404 and ErrConflict maps to
// 409 (for example deleting a room that still has upcoming shows).
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories translate.
const (
	mysqlDuplicateEntry = 1062 // unique key violation
	mysqlRowReferenced  = 1451 // delete blocked by a foreign key
)

// isMySQLError reports whether err is a server error with the given number.
func isMySQLError(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state.
var ErrConflict = errors.New("conflict")

// ErrCorruptLayout is returned when the stored seats of a room do not form
// a complete rectangular grid.
var ErrCorruptLayout = errors.New("stored seat layout is inconsistent")
