package wizard

import (
	"context"
	"time"

	"github.com/Weakky/introspection-cli/pkg/credentials"
)

// TestFunc verifies a descriptor against a live database. The wizard's
// "Test connection" action runs it off the update loop with its own timeout.
type TestFunc func(ctx context.Context, desc credentials.Descriptor) error

const testConnectionTimeout = 10 * time.Second

func chooseFamilyStep() (string, []Element) {
	return "What kind of database do you want to introspect?", []Element{
		Select{Label: "PostgreSQL", Value: string(credentials.FamilyPostgres), Description: "Introspect a PostgreSQL schema"},
		Select{Label: "MySQL", Value: string(credentials.FamilyMySQL), Description: "Introspect a MySQL database"},
		Select{Label: "MongoDB", Value: string(credentials.FamilyMongo), Description: "Introspect a MongoDB database"},
	}
}

func connectStep(family credentials.Family, test TestFunc) (string, []Element) {
	var fields []Element
	switch family {
	case credentials.FamilyMySQL:
		fields = []Element{
			TextInput{ID: "host", Label: "Host", Placeholder: "localhost"},
			TextInput{ID: "port", Label: "Port", Placeholder: "3306"},
			TextInput{ID: "user", Label: "User", Placeholder: "root"},
			TextInput{ID: "password", Label: "Password", Mask: true},
			TextInput{ID: "database", Label: "Database", Placeholder: "mydb"},
		}
	case credentials.FamilyMongo:
		fields = []Element{
			TextInput{ID: "uri", Label: "Connection string", Placeholder: "mongodb://localhost:27017/mydb"},
			TextInput{ID: "database", Label: "Database", Placeholder: "derived from the URI when empty"},
		}
	default:
		fields = []Element{
			TextInput{ID: "host", Label: "Host", Placeholder: "localhost"},
			TextInput{ID: "port", Label: "Port", Placeholder: "5432"},
			TextInput{ID: "user", Label: "User", Placeholder: "postgres"},
			TextInput{ID: "password", Label: "Password", Mask: true},
			TextInput{ID: "database", Label: "Database", Placeholder: "mydb"},
			TextInput{ID: "schema", Label: "Schema", Placeholder: "public"},
			Checkbox{ID: "ssl", Label: "Use SSL"},
		}
	}

	elements := append(fields,
		Separator{Divider: '─'},
		Select{
			Label:       "Test connection",
			Description: "Verify the credentials against the database",
			OnSelect:    testConnectionAction(family, test),
		},
		Select{
			Label:       "Connect",
			Value:       "connect",
			Description: "Introspect with these credentials",
		},
	)
	return "Enter the connection details", elements
}

func testConnectionAction(family credentials.Family, test TestFunc) SelectAction {
	return func(form FormState) ActionResult {
		desc, err := descriptorFromForm(family, form)
		if err != nil {
			return ActionResult{Err: err}
		}
		if test == nil {
			return ActionResult{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), testConnectionTimeout)
		defer cancel()
		return ActionResult{Err: test(ctx, desc)}
	}
}

// descriptorFromForm funnels the wizard's answers through the same resolver
// the flag path uses, so both paths produce identical descriptors and
// identical validation errors.
func descriptorFromForm(family credentials.Family, form FormState) (credentials.Descriptor, error) {
	flags := &credentials.Flags{}
	switch family {
	case credentials.FamilyMySQL:
		flags.MySQLHost = form.String("host")
		flags.MySQLUser = form.String("user")
		flags.MySQLPassword = form.String("password")
		flags.MySQLDatabase = form.String("database")
		flags.MySQLPort = form.String("port")
	case credentials.FamilyMongo:
		flags.MongoURI = form.String("uri")
		flags.MongoDatabase = form.String("database")
	default:
		flags.PGHost = form.String("host")
		flags.PGUser = form.String("user")
		flags.PGPassword = form.String("password")
		flags.PGDatabase = form.String("database")
		flags.PGPort = form.String("port")
		flags.PGSchema = form.String("schema")
		flags.PGSSL = form.Bool("ssl")
	}
	return credentials.Resolve(flags)
}
