package schema

import "errors"

// ErrSchemaRead indicates the live schema could not be enumerated.
// This is fatal and aborts the migration before any write is attempted.
var ErrSchemaRead = errors.New("reading live schema")
