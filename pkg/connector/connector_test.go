package connector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Weakky/introspection-cli/pkg/credentials"
	"github.com/Weakky/introspection-cli/pkg/datamodel"
)

func TestPostgresDSN(t *testing.T) {
	port := 5433

	tests := []struct {
		name string
		desc credentials.Postgres
		want string
	}{
		{
			name: "required fields only, port omitted",
			desc: credentials.Postgres{Host: "localhost", User: "admin", Password: "secret", Database: "app"},
			want: "host=localhost user=admin password=secret dbname=app",
		},
		{
			name: "explicit port",
			desc: credentials.Postgres{Host: "localhost", User: "admin", Password: "secret", Database: "app", Port: &port},
			want: "host=localhost user=admin password=secret dbname=app port=5433",
		},
		{
			name: "ssl enabled",
			desc: credentials.Postgres{Host: "localhost", User: "admin", Password: "secret", Database: "app", SSL: true},
			want: "host=localhost user=admin password=secret dbname=app sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgresDSN(tt.desc))
		})
	}
}

func TestMapPostgresType(t *testing.T) {
	tests := []struct {
		dataType string
		want     string
	}{
		{"integer", datamodel.TypeInt},
		{"bigserial", datamodel.TypeInt},
		{"double precision", datamodel.TypeFloat},
		{"numeric", datamodel.TypeFloat},
		{"boolean", datamodel.TypeBoolean},
		{"timestamp with time zone", datamodel.TypeDateTime},
		{"jsonb", datamodel.TypeJSON},
		{"bytea", datamodel.TypeBytes},
		{"text", datamodel.TypeString},
		{"character varying", datamodel.TypeString},
		{"uuid", datamodel.TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.dataType, func(t *testing.T) {
			assert.Equal(t, tt.want, mapPostgresType(tt.dataType))
		})
	}
}

func TestMapMySQLType(t *testing.T) {
	tests := []struct {
		dataType string
		want     string
	}{
		{"int", datamodel.TypeInt},
		{"bigint", datamodel.TypeInt},
		{"decimal", datamodel.TypeFloat},
		{"bit", datamodel.TypeBoolean},
		{"datetime", datamodel.TypeDateTime},
		{"json", datamodel.TypeJSON},
		{"longblob", datamodel.TypeBytes},
		{"varchar", datamodel.TypeString},
		{"enum", datamodel.TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.dataType, func(t *testing.T) {
			assert.Equal(t, tt.want, mapMySQLType(tt.dataType))
		})
	}
}

func TestMapBSONType(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int32", int32(1), datamodel.TypeInt},
		{"int64", int64(1), datamodel.TypeInt},
		{"double", 1.5, datamodel.TypeFloat},
		{"decimal128", primitive.Decimal128{}, datamodel.TypeFloat},
		{"bool", true, datamodel.TypeBoolean},
		{"datetime", primitive.DateTime(0), datamodel.TypeDateTime},
		{"time", time.Now(), datamodel.TypeDateTime},
		{"embedded document", primitive.D{}, datamodel.TypeJSON},
		{"array", primitive.A{}, datamodel.TypeJSON},
		{"binary", primitive.Binary{}, datamodel.TypeBytes},
		{"string", "text", datamodel.TypeString},
		{"object id", primitive.NewObjectID(), datamodel.TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapBSONType(tt.value))
		})
	}
}

func TestSchemaNotFoundError(t *testing.T) {
	err := &SchemaNotFoundError{Schema: "billing", Available: []string{"public", "audit"}}
	assert.EqualError(t, err, `schema "billing" not found: available schemas are public, audit`)
}

func TestEmptyIntrospectionError(t *testing.T) {
	err := &EmptyIntrospectionError{Schema: "public"}
	assert.EqualError(t, err, `schema "public" contains no tables to introspect`)
}
