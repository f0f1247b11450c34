package database

import "errors"

// ErrDatabaseMissing indicates the database file does not exist or is not
// readable. The migration must never create a fresh database.
var ErrDatabaseMissing = errors.New("database file missing")

// ErrConnectionFailed indicates a connection to the database could not be established.
var ErrConnectionFailed = errors.New("database connection failed")
