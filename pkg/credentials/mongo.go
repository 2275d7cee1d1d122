package credentials

import (
	"fmt"
	"net/url"
	"strings"
)

// PopulateDatabase determines the database name for a Mongo connection.
// An explicit database flag always wins; otherwise the name is derived from
// the URI path. A URI with an empty or root path and no explicit flag is a
// MissingDatabaseError, since Mongo has no implicit default.
func PopulateDatabase(uri, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB URI: %w", err)
	}
	database := strings.TrimPrefix(parsed.Path, "/")
	if database == "" {
		return "", &MissingDatabaseError{URI: uri}
	}
	return database, nil
}

// SanitizeURI rewrites an empty or root URI path to "/admin" so connector
// construction always sees a concrete path segment. URIs that already carry
// a database are returned unchanged.
func SanitizeURI(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB URI: %w", err)
	}
	if parsed.Path == "" || parsed.Path == "/" {
		parsed.Path = "/admin"
		return parsed.String(), nil
	}
	return uri, nil
}

// HasAuthSource reports whether the URI carries an authSource query
// parameter. The connector uses this to decide where authentication should
// happen; it is not enforced here.
func HasAuthSource(uri string) bool {
	parsed, err := url.Parse(uri)
	if err != nil {
		return false
	}
	return parsed.Query().Get("authSource") != ""
}
