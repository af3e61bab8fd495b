package store

import (
	"fmt"

	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

type DatabaseType string

const (
	DBTypePostgres  DatabaseType = "postgres"
	DBTypeSQLite    DatabaseType = "sqlite"
	DBTypeSQLServer DatabaseType = "sqlserver"
)

type DBConfig struct {
	DSN           string
	Type          DatabaseType
	MigrationsDir string
	MaxOpenConns  int
}

// trackTables names the relations backing one track. Both tracks have the
// same shape; the off-campus tables use an "o" column prefix.
type trackTables struct {
	Companies     string
	CompanyName   string
	CompanyRounds string

	Progress      string
	StudentName   string
	RegNumber     string
	Branch        string
	ProgressName  string
	RoundsCleared string
	Blog          string
}

var trackSchema = map[models.Track]trackTables{
	models.OnCampus: {
		Companies:     "companies",
		CompanyName:   "cname",
		CompanyRounds: "trounds",
		Progress:      "student_progress",
		StudentName:   "stname",
		RegNumber:     "srno",
		Branch:        "branch",
		ProgressName:  "cname",
		RoundsCleared: "rounds_cleared",
		Blog:          "content",
	},
	models.OffCampus: {
		Companies:     "ofcompanies",
		CompanyName:   "ocname",
		CompanyRounds: "otrounds",
		Progress:      "ofstudent_progress",
		StudentName:   "ostname",
		RegNumber:     "osrno",
		Branch:        "obranch",
		ProgressName:  "ocname",
		RoundsCleared: "orounds_cleared",
		Blog:          "ocontent",
	},
}

func tablesFor(track models.Track) (trackTables, error) {
	t, ok := trackSchema[track]
	if !ok {
		return trackTables{}, fmt.Errorf("unknown track %q", track)
	}
	return t, nil
}

type credentialTable struct {
	Table    string
	ID       string
	Password string
}

var credentialSchema = map[models.Role]credentialTable{
	models.RoleAdmin:   {Table: "admins", ID: "arno", Password: "apword"},
	models.RoleStudent: {Table: "students", ID: "srno", Password: "spword"},
}

func credentialsFor(role models.Role) (credentialTable, error) {
	t, ok := credentialSchema[role]
	if !ok {
		return credentialTable{}, fmt.Errorf("unknown role %q", role)
	}
	return t, nil
}
