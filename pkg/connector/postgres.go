package connector

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Weakky/introspection-cli/pkg/credentials"
	"github.com/Weakky/introspection-cli/pkg/datamodel"
)

type postgresConnector struct {
	conn *pgx.Conn
	log  zerolog.Logger
}

func connectPostgres(ctx context.Context, desc credentials.Postgres, log zerolog.Logger) (*postgresConnector, error) {
	dsn := postgresDSN(desc)
	log.Debug().Str("host", desc.Host).Str("database", desc.Database).Msg("connecting to postgres")

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return &postgresConnector{conn: conn, log: log}, nil
}

// postgresDSN builds a keyword/value connection string. Unset port is simply
// omitted: pgx applies its own default.
func postgresDSN(desc credentials.Postgres) string {
	parts := []string{
		fmt.Sprintf("host=%s", desc.Host),
		fmt.Sprintf("user=%s", desc.User),
		fmt.Sprintf("password=%s", desc.Password),
		fmt.Sprintf("dbname=%s", desc.Database),
	}
	if desc.Port != nil {
		parts = append(parts, fmt.Sprintf("port=%d", *desc.Port))
	}
	if desc.SSL {
		parts = append(parts, "sslmode=require")
	}
	return strings.Join(parts, " ")
}

func (c *postgresConnector) ListSchemas(ctx context.Context) ([]string, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('information_schema', 'pg_catalog', 'pg_toast')
		ORDER BY schema_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schema name: %w", err)
		}
		schemas = append(schemas, name)
	}
	return schemas, rows.Err()
}

func (c *postgresConnector) Introspect(ctx context.Context, schema string) (*datamodel.Datamodel, error) {
	if schema == "" {
		schema = "public"
	}
	c.log.Debug().Str("schema", schema).Msg("introspecting postgres schema")

	tables, err := c.listTables(ctx, schema)
	if err != nil {
		return nil, err
	}
	primaryKeys, err := c.primaryKeyColumns(ctx, schema)
	if err != nil {
		return nil, err
	}

	dm := &datamodel.Datamodel{}
	for _, table := range tables {
		fields, err := c.tableFields(ctx, schema, table, primaryKeys[table])
		if err != nil {
			return nil, err
		}
		dm.Models = append(dm.Models, datamodel.Model{Name: table, Fields: fields})
	}
	return dm, nil
}

func (c *postgresConnector) listTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// primaryKeyColumns maps table name to the set of its primary key columns.
func (c *postgresConnector) primaryKeyColumns(ctx context.Context, schema string) (map[string]map[string]bool, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT kcu.table_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON tc.constraint_name = kcu.constraint_name
		 AND tc.table_schema = kcu.table_schema
		WHERE tc.table_schema = $1 AND tc.constraint_type = 'PRIMARY KEY'`, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read primary keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]map[string]bool)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return nil, fmt.Errorf("failed to scan primary key: %w", err)
		}
		if keys[table] == nil {
			keys[table] = make(map[string]bool)
		}
		keys[table][column] = true
	}
	return keys, rows.Err()
}

func (c *postgresConnector) tableFields(ctx context.Context, schema, table string, primary map[string]bool) ([]datamodel.Field, error) {
	rows, err := c.conn.Query(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var fields []datamodel.Field
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		fields = append(fields, datamodel.Field{
			Name:     name,
			Type:     mapPostgresType(dataType),
			Optional: nullable == "YES",
			IsID:     primary[name],
		})
	}
	return fields, rows.Err()
}

func mapPostgresType(dataType string) string {
	switch strings.ToLower(dataType) {
	case "smallint", "integer", "bigint", "smallserial", "serial", "bigserial":
		return datamodel.TypeInt
	case "real", "double precision", "numeric", "decimal", "money":
		return datamodel.TypeFloat
	case "boolean":
		return datamodel.TypeBoolean
	case "timestamp without time zone", "timestamp with time zone", "date", "time without time zone", "time with time zone":
		return datamodel.TypeDateTime
	case "json", "jsonb":
		return datamodel.TypeJSON
	case "bytea":
		return datamodel.TypeBytes
	default:
		return datamodel.TypeString
	}
}

func (c *postgresConnector) Disconnect(ctx context.Context) error {
	return c.conn.Close(ctx)
}
