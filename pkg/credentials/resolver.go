package credentials

import (
	"fmt"
	"strconv"
)

// Flags is the flat bag of connection flags consumed by Resolve. Values come
// from cobra already parsed; an empty string counts as "not provided", even
// when the flag was passed explicitly as "" (see DESIGN.md).
type Flags struct {
	PGHost     string
	PGUser     string
	PGPassword string
	PGDatabase string
	PGPort     string
	PGSchema   string
	PGSSL      bool

	MySQLHost     string
	MySQLUser     string
	MySQLPassword string
	MySQLDatabase string
	MySQLPort     string

	MongoURI      string
	MongoDatabase string
}

// flagField pairs a flag's CLI name with its supplied value, preserving the
// required-group ordering that IncompleteGroupError messages rely on.
type flagField struct {
	name  string
	value string
}

func (f *Flags) postgresRequired() []flagField {
	return []flagField{
		{"--pg-host", f.PGHost},
		{"--pg-user", f.PGUser},
		{"--pg-password", f.PGPassword},
		{"--pg-db", f.PGDatabase},
	}
}

func (f *Flags) mysqlRequired() []flagField {
	return []flagField{
		{"--mysql-host", f.MySQLHost},
		{"--mysql-user", f.MySQLUser},
		{"--mysql-password", f.MySQLPassword},
	}
}

// Resolve validates the flag bag against the three mutually exclusive flag
// groups and produces a single descriptor, or a precise validation error.
// It returns ErrNoFlags when no group has any member present, which callers
// treat as the cue to run the interactive wizard instead.
func Resolve(f *Flags) (Descriptor, error) {
	pgPresent, pgMissing := splitGroup(f.postgresRequired())
	myPresent, myMissing := splitGroup(f.mysqlRequired())

	if len(pgPresent) > 0 && len(myPresent) > 0 {
		return nil, &MutualExclusionError{Families: [2]Family{FamilyPostgres, FamilyMySQL}}
	}

	if len(pgPresent) > 0 && len(pgMissing) > 0 {
		return nil, &IncompleteGroupError{Family: FamilyPostgres, Missing: pgMissing}
	}
	if len(myPresent) > 0 && len(myMissing) > 0 {
		return nil, &IncompleteGroupError{Family: FamilyMySQL, Missing: myMissing}
	}

	switch {
	case len(pgPresent) > 0:
		port, err := parsePort(f.PGPort, "--pg-port")
		if err != nil {
			return nil, err
		}
		return Postgres{
			Host:     f.PGHost,
			User:     f.PGUser,
			Password: f.PGPassword,
			Database: f.PGDatabase,
			Port:     port,
			Schema:   f.PGSchema,
			SSL:      f.PGSSL,
		}, nil

	case len(myPresent) > 0:
		port, err := parsePort(f.MySQLPort, "--mysql-port")
		if err != nil {
			return nil, err
		}
		return MySQL{
			Host:     f.MySQLHost,
			User:     f.MySQLUser,
			Password: f.MySQLPassword,
			Database: f.MySQLDatabase,
			Port:     port,
		}, nil

	case f.MongoURI != "":
		database, err := PopulateDatabase(f.MongoURI, f.MongoDatabase)
		if err != nil {
			return nil, err
		}
		uri, err := SanitizeURI(f.MongoURI)
		if err != nil {
			return nil, err
		}
		return Mongo{URI: uri, Database: database}, nil
	}

	return nil, ErrNoFlags
}

// splitGroup partitions a required group into present and missing flag names,
// preserving group order for the missing list.
func splitGroup(group []flagField) (present, missing []string) {
	for _, field := range group {
		if field.value != "" {
			present = append(present, field.name)
		} else {
			missing = append(missing, field.name)
		}
	}
	return present, missing
}

// parsePort parses an optional port flag. An empty value yields nil: port
// defaults belong to the connector, never to the resolver.
func parsePort(value, flagName string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	port, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", flagName, value, err)
	}
	return &port, nil
}
