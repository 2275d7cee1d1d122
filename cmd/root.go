package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Weakky/introspection-cli/pkg/connector"
	"github.com/Weakky/introspection-cli/pkg/credentials"
	"github.com/Weakky/introspection-cli/pkg/datamodel"
	"github.com/Weakky/introspection-cli/pkg/logger"
	"github.com/Weakky/introspection-cli/pkg/project"
	"github.com/Weakky/introspection-cli/pkg/wizard"
)

var (
	// Connection flags
	connFlags credentials.Flags

	// Mode flags
	interactive bool
	sdlOnly     bool
	projectFile string
	envFile     string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Introspect a database and generate its datamodel",
	Long: `A CLI tool that connects to a PostgreSQL, MySQL, or MongoDB database,
introspects its schema, and writes the result as a datamodel file.

Connection parameters come from flags, environment variables, or a project
file; when none are given, an interactive wizard collects them.`,
	RunE:          runIntrospect,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&connFlags.PGHost, "pg-host", "", "PostgreSQL host")
	pf.StringVar(&connFlags.PGUser, "pg-user", "", "PostgreSQL user")
	pf.StringVar(&connFlags.PGPassword, "pg-password", "", "PostgreSQL password")
	pf.StringVar(&connFlags.PGDatabase, "pg-db", "", "PostgreSQL database")
	pf.StringVar(&connFlags.PGPort, "pg-port", "", "PostgreSQL port")
	pf.StringVar(&connFlags.PGSchema, "pg-schema", "", "PostgreSQL schema to introspect")
	pf.BoolVar(&connFlags.PGSSL, "pg-ssl", false, "Require SSL for PostgreSQL")

	pf.StringVar(&connFlags.MySQLHost, "mysql-host", "", "MySQL host")
	pf.StringVar(&connFlags.MySQLUser, "mysql-user", "", "MySQL user")
	pf.StringVar(&connFlags.MySQLPassword, "mysql-password", "", "MySQL password")
	pf.StringVar(&connFlags.MySQLDatabase, "mysql-db", "", "MySQL database to introspect")
	pf.StringVar(&connFlags.MySQLPort, "mysql-port", "", "MySQL port")

	pf.StringVar(&connFlags.MongoURI, "mongo-uri", "", "MongoDB connection string")
	pf.StringVar(&connFlags.MongoDatabase, "mongo-db", "", "MongoDB database to introspect")

	pf.BoolVarP(&interactive, "interactive", "i", false, "Force the interactive wizard")
	pf.BoolVar(&sdlOnly, "sdl", false, "Print the datamodel to stdout instead of writing a file")
	pf.StringVarP(&projectFile, "project", "p", "", "Path to a project file with connection defaults")
	pf.StringVarP(&envFile, "env-file", "e", "", "Path to a dotenv file to load before resolving flags")
	pf.BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(schemasCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func runIntrospect(cmd *cobra.Command, args []string) error {
	log := logger.New(os.Stderr, debug)
	ctx := cmd.Context()

	if err := applyDefaults(); err != nil {
		return err
	}

	desc, fromWizard, err := resolveDescriptor(log)
	if err != nil {
		return err
	}
	if desc == nil {
		// Wizard cancelled; nothing to do.
		return nil
	}

	target, err := introspectionTarget(desc, fromWizard)
	if err != nil {
		return err
	}

	conn, err := connector.New(ctx, desc, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to disconnect")
		}
	}()

	schemas, err := conn.ListSchemas(ctx)
	if err != nil {
		return err
	}
	if !contains(schemas, target) {
		return &connector.SchemaNotFoundError{Schema: target, Available: schemas}
	}

	dm, err := conn.Introspect(ctx, target)
	if err != nil {
		return err
	}
	if len(dm.Models) == 0 {
		return &connector.EmptyIntrospectionError{Schema: target}
	}

	return writeDatamodel(dm, target)
}

// applyDefaults loads the env file and project file, then fills empty flags
// from them.
func applyDefaults() error {
	if envFile != "" {
		if err := project.LoadEnvFile(envFile); err != nil {
			return err
		}
	}
	var proj *project.Project
	if projectFile != "" {
		var err error
		proj, err = project.Load(projectFile)
		if err != nil {
			return err
		}
	}
	project.Apply(&connFlags, proj)
	return nil
}

// resolveDescriptor runs the flag resolver, falling back to the wizard when
// no flags were given or --interactive forces it. A nil descriptor with nil
// error means the wizard was cancelled.
func resolveDescriptor(log zerolog.Logger) (credentials.Descriptor, bool, error) {
	if !interactive {
		desc, err := credentials.Resolve(&connFlags)
		if err == nil {
			return desc, false, nil
		}
		if !errors.Is(err, credentials.ErrNoFlags) {
			return nil, false, err
		}
	}

	desc, err := wizard.Run(wizard.Options{
		Initial:        initialForm(&connFlags),
		TestConnection: testConnection(log),
	})
	if errors.Is(err, wizard.ErrCancelled) {
		return nil, true, nil
	}
	if err != nil {
		return nil, true, err
	}
	return desc, true, nil
}

// introspectionTarget picks the schema/database name to introspect. A family
// resolved from flags with no schema name is an operator mistake; the wizard
// path falls back to the Postgres default schema instead.
func introspectionTarget(desc credentials.Descriptor, fromWizard bool) (string, error) {
	switch d := desc.(type) {
	case credentials.Postgres:
		if d.Schema != "" {
			return d.Schema, nil
		}
		if fromWizard {
			return "public", nil
		}
		return "", fmt.Errorf("no schema name given: pass --pg-schema or run interactively")
	case credentials.MySQL:
		if d.Database == "" {
			return "", fmt.Errorf("no database name given: pass --mysql-db or run interactively")
		}
		return d.Database, nil
	case credentials.Mongo:
		return d.Database, nil
	}
	return "", fmt.Errorf("unsupported descriptor family %q", desc.Family())
}

func testConnection(log zerolog.Logger) wizard.TestFunc {
	return func(ctx context.Context, desc credentials.Descriptor) error {
		conn, err := connector.New(ctx, desc, log)
		if err != nil {
			return err
		}
		return conn.Disconnect(ctx)
	}
}

// initialForm pre-seeds the wizard from whatever partial flags were given, so
// the operator does not retype them.
func initialForm(f *credentials.Flags) wizard.FormState {
	form := wizard.FormState{}
	switch {
	case f.PGHost != "" || f.PGUser != "" || f.PGPassword != "" || f.PGDatabase != "":
		form["host"] = f.PGHost
		form["port"] = f.PGPort
		form["user"] = f.PGUser
		form["password"] = f.PGPassword
		form["database"] = f.PGDatabase
		form["schema"] = f.PGSchema
		form["ssl"] = f.PGSSL
	case f.MySQLHost != "" || f.MySQLUser != "" || f.MySQLPassword != "":
		form["host"] = f.MySQLHost
		form["port"] = f.MySQLPort
		form["user"] = f.MySQLUser
		form["password"] = f.MySQLPassword
		form["database"] = f.MySQLDatabase
	case f.MongoURI != "" || f.MongoDatabase != "":
		form["uri"] = f.MongoURI
		form["database"] = f.MongoDatabase
	}
	return form
}

// writeDatamodel renders the result and either prints it (--sdl) or writes
// the timestamped datamodel file.
func writeDatamodel(dm *datamodel.Datamodel, target string) error {
	rendered := dm.Render()
	if sdlOnly {
		fmt.Print(rendered)
		return nil
	}

	filename := fmt.Sprintf("datamodel-%d.prisma", time.Now().UnixMilli())
	if err := os.WriteFile(filename, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	fmt.Printf("Introspected %d database tables from %s\n", len(dm.Models), target)
	fmt.Printf("Wrote %s\n", filename)
	return nil
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
