package gate

import (
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// PathTable holds the role-gated path sets. All entries except "/" match by
// prefix; "/" matches only the root page itself.
type PathTable struct {
	Public      []string `yaml:"public"`
	Protected   []string `yaml:"protected"`
	CompanyOnly []string `yaml:"company_only"`
	StudentOnly []string `yaml:"student_only"`
	SignIn      []string `yaml:"sign_in"`
}

// DefaultPaths mirrors the production route map.
func DefaultPaths() PathTable {
	return PathTable{
		Public: []string{
			"/",
			"/jobs",
			"/features",
			"/grandprix",
			"/static",
			"/assets",
			"/api",
			"/auth",
			"/healthz",
		},
		Protected: []string{
			"/dashboard",
			"/profile",
			"/applications",
			"/messages",
			"/notifications",
			"/interviews",
			"/company",
		},
		CompanyOnly: []string{
			"/company",
		},
		StudentOnly: []string{
			"/dashboard",
			"/profile",
			"/applications",
			"/messages",
		},
		SignIn: []string{
			"/login",
			"/signup",
		},
	}
}

// LoadPathsFromEnv returns the default table, overridden by the YAML file
// named in GATE_PATHS_FILE when that variable is set.
func LoadPathsFromEnv() (PathTable, error) {
	file := os.Getenv("GATE_PATHS_FILE")
	if file == "" {
		return DefaultPaths(), nil
	}
	return LoadPaths(file)
}

func LoadPaths(file string) (PathTable, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return PathTable{}, err
	}

	table := DefaultPaths()
	if err := yaml.Unmarshal(data, &table); err != nil {
		return PathTable{}, err
	}
	return table, nil
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func (t PathTable) IsPublic(path string) bool      { return matchesAny(path, t.Public) }
func (t PathTable) IsProtected(path string) bool   { return matchesAny(path, t.Protected) }
func (t PathTable) IsCompanyOnly(path string) bool { return matchesAny(path, t.CompanyOnly) }
func (t PathTable) IsStudentOnly(path string) bool { return matchesAny(path, t.StudentOnly) }
func (t PathTable) IsSignIn(path string) bool      { return matchesAny(path, t.SignIn) }
