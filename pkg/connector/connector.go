// Package connector turns a credential descriptor into a live database
// connection that can list schemas and introspect one of them into a
// normalized datamodel.
package connector

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Weakky/introspection-cli/pkg/credentials"
	"github.com/Weakky/introspection-cli/pkg/datamodel"
)

// Connector is the per-family introspection contract. Implementations hold an
// open client connection until Disconnect.
type Connector interface {
	// ListSchemas returns the schema or database names visible to the
	// connected user, system schemas excluded.
	ListSchemas(ctx context.Context) ([]string, error)

	// Introspect reads the named schema's structure into a normalized
	// datamodel.
	Introspect(ctx context.Context, schema string) (*datamodel.Datamodel, error)

	// Disconnect releases the underlying client connection.
	Disconnect(ctx context.Context) error
}

// New connects to the database described by desc and returns the matching
// family connector.
func New(ctx context.Context, desc credentials.Descriptor, log zerolog.Logger) (Connector, error) {
	switch d := desc.(type) {
	case credentials.Postgres:
		return connectPostgres(ctx, d, log)
	case credentials.MySQL:
		return connectMySQL(ctx, d, log)
	case credentials.Mongo:
		return connectMongo(ctx, d, log)
	default:
		return nil, fmt.Errorf("unsupported descriptor family %q", desc.Family())
	}
}

// SchemaNotFoundError is returned when the requested schema is absent from
// the server. The message enumerates what is actually there.
type SchemaNotFoundError struct {
	Schema    string
	Available []string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema %q not found: available schemas are %s", e.Schema, strings.Join(e.Available, ", "))
}

// EmptyIntrospectionError is returned when introspection yields zero tables.
type EmptyIntrospectionError struct {
	Schema string
}

func (e *EmptyIntrospectionError) Error() string {
	return fmt.Sprintf("schema %q contains no tables to introspect", e.Schema)
}
