package creator

import "fmt"

// DatabaseProfile carries the connection properties substituted into a
// created application's configuration. Profiles are data; adding a backend
// means adding an entry, not a code branch.
type DatabaseProfile struct {
	Driver      string
	Development string
	Test        string
	Production  string
	Username    string
}

// dsnPattern receives the per-environment database name.
type profileTemplate struct {
	driver     string
	dsnPattern string
	username   string
}

var profileTemplates = map[string]profileTemplate{
	"mysql": {
		driver:     "mysql",
		dsnPattern: "root:@tcp(localhost:3306)/%s?parseTime=true&charset=utf8mb4",
		username:   "root",
	},
	"postgres": {
		driver:     "pgx",
		dsnPattern: "postgres://localhost:5432/%s?sslmode=disable",
		username:   "postgres",
	},
	"sqlite3": {
		driver:     "sqlite",
		dsnPattern: "file:%s.db?_pragma=foreign_keys(1)",
	},
}

// DefaultDatabaseType is used when app creation gets no explicit backend.
const DefaultDatabaseType = "mysql"

// DatabaseTypes lists the known backends.
func DatabaseTypes() []string {
	return []string{"mysql", "postgres", "sqlite3"}
}

// ProfileFor builds the database profile for an application. Unknown types
// yield placeholder values the user fills in by hand.
func ProfileFor(databaseType, appName string) DatabaseProfile {
	tpl, ok := profileTemplates[databaseType]
	if !ok {
		return DatabaseProfile{Driver: "your_db_driver"}
	}
	return DatabaseProfile{
		Driver:      tpl.driver,
		Development: fmt.Sprintf(tpl.dsnPattern, appName+"_development"),
		Test:        fmt.Sprintf(tpl.dsnPattern, appName+"_test"),
		Production:  fmt.Sprintf(tpl.dsnPattern, appName+"_production"),
		Username:    tpl.username,
	}
}
