package connector

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/Weakky/introspection-cli/pkg/credentials"
	"github.com/Weakky/introspection-cli/pkg/datamodel"
)

// mysqlSystemSchemas are never offered for introspection.
var mysqlSystemSchemas = map[string]bool{
	"information_schema": true,
	"mysql":              true,
	"performance_schema": true,
	"sys":                true,
}

type mysqlConnector struct {
	db  *sql.DB
	log zerolog.Logger
}

func connectMySQL(ctx context.Context, desc credentials.MySQL, log zerolog.Logger) (*mysqlConnector, error) {
	cfg := mysql.NewConfig()
	cfg.User = desc.User
	cfg.Passwd = desc.Password
	cfg.Net = "tcp"
	cfg.DBName = desc.Database
	cfg.Addr = desc.Host
	if desc.Port != nil {
		cfg.Addr = fmt.Sprintf("%s:%d", desc.Host, *desc.Port)
	}
	log.Debug().Str("addr", cfg.Addr).Str("database", desc.Database).Msg("connecting to mysql")

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}
	return &mysqlConnector{db: db, log: log}, nil
}

func (c *mysqlConnector) ListSchemas(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT schema_name
		FROM information_schema.schemata
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
		if mysqlSystemSchemas[name] {
			continue
		}
		schemas = append(schemas, name)
	}
	return schemas, rows.Err()
}

func (c *mysqlConnector) Introspect(ctx context.Context, schema string) (*datamodel.Datamodel, error) {
	c.log.Debug().Str("schema", schema).Msg("introspecting mysql database")

	tables, err := c.listTables(ctx, schema)
	if err != nil {
		return nil, err
	}

	dm := &datamodel.Datamodel{}
	for _, table := range tables {
		fields, err := c.tableFields(ctx, schema, table)
		if err != nil {
			return nil, err
		}
		dm.Models = append(dm.Models, datamodel.Model{Name: table, Fields: fields})
	}
	return dm, nil
}

func (c *mysqlConnector) listTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
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

func (c *mysqlConnector) tableFields(ctx context.Context, schema, table string) ([]datamodel.Field, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable, column_key
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position`, schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var fields []datamodel.Field
	for rows.Next() {
		var name, dataType, nullable, columnKey string
		if err := rows.Scan(&name, &dataType, &nullable, &columnKey); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		fields = append(fields, datamodel.Field{
			Name:     name,
			Type:     mapMySQLType(dataType),
			Optional: nullable == "YES",
			IsID:     columnKey == "PRI",
		})
	}
	return fields, rows.Err()
}

func mapMySQLType(dataType string) string {
	switch strings.ToLower(dataType) {
	case "tinyint", "smallint", "mediumint", "int", "bigint", "year":
		return datamodel.TypeInt
	case "float", "double", "decimal":
		return datamodel.TypeFloat
	case "bit":
		return datamodel.TypeBoolean
	case "date", "datetime", "timestamp", "time":
		return datamodel.TypeDateTime
	case "json":
		return datamodel.TypeJSON
	case "binary", "varbinary", "tinyblob", "blob", "mediumblob", "longblob":
		return datamodel.TypeBytes
	default:
		return datamodel.TypeString
	}
}

func (c *mysqlConnector) Disconnect(ctx context.Context) error {
	return c.db.Close()
}
