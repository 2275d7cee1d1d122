package credentials

// Family identifies the database engine a descriptor targets.
type Family string

const (
	FamilyPostgres Family = "postgres"
	FamilyMySQL    Family = "mysql"
	FamilyMongo    Family = "mongo"
)

// Descriptor is the normalized, family-tagged set of connection parameters
// produced by either resolution path (flags or wizard). Exactly one concrete
// variant is ever populated per resolution.
type Descriptor interface {
	Family() Family
}

// Postgres holds connection parameters for a PostgreSQL database.
// Port is nil when the operator did not supply one; defaults belong to the
// connector layer, not here.
type Postgres struct {
	Host     string
	User     string
	Password string
	Database string
	Port     *int
	Schema   string
	SSL      bool
}

func (Postgres) Family() Family { return FamilyPostgres }

// MySQL holds connection parameters for a MySQL database.
type MySQL struct {
	Host     string
	User     string
	Password string
	Database string
	Port     *int
}

func (MySQL) Family() Family { return FamilyMySQL }

// Mongo holds a normalized MongoDB connection URI and the database to
// introspect. URI is always sanitized (concrete path segment) by the time a
// Mongo descriptor exists.
type Mongo struct {
	URI      string
	Database string
}

func (Mongo) Family() Family { return FamilyMongo }
