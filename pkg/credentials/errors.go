package credentials

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFlags signals that no connection flag group was satisfied at all.
// Callers treat it as "fall back to the interactive wizard", not a failure.
var ErrNoFlags = errors.New("no connection flags provided")

// MutualExclusionError is returned when flags from two database families are
// both present. Partial credentials must never silently resolve to the wrong
// family.
type MutualExclusionError struct {
	Families [2]Family
}

func (e *MutualExclusionError) Error() string {
	return fmt.Sprintf("cannot mix %s and %s connection flags: provide credentials for exactly one database", e.Families[0], e.Families[1])
}

// IncompleteGroupError is returned when a family's flag group is partially
// present. Missing lists the absent flag names in required-group order.
type IncompleteGroupError struct {
	Family  Family
	Missing []string
}

func (e *IncompleteGroupError) Error() string {
	return fmt.Sprintf("incomplete %s credentials: missing %s", e.Family, strings.Join(e.Missing, ", "))
}

// MissingDatabaseError is returned when a Mongo URI carries no database in
// its path and no explicit database flag was given. Mongo has no implicit
// default database to fall back to.
type MissingDatabaseError struct {
	URI string
}

func (e *MissingDatabaseError) Error() string {
	return fmt.Sprintf("no database found in connection string %q: append one to the URI path or pass --mongo-db", e.URI)
}
