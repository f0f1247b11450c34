package change

import "errors"

// ErrInvalidIdentifier indicates a table or column name that is not a plain identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier in declaration")

// ErrMissingType indicates a column change without a column type.
var ErrMissingType = errors.New("column change missing type")

// ErrMissingDefault indicates a NOT NULL column declared without a default,
// which would break the additive contract on populated tables.
var ErrMissingDefault = errors.New("NOT NULL column missing default")

// ErrNotAdditive indicates a table change whose DDL is not a CREATE TABLE.
var ErrNotAdditive = errors.New("table change is not a CREATE TABLE")

// ErrDuplicateChange indicates the same table/column declared twice.
var ErrDuplicateChange = errors.New("duplicate change in declaration")
