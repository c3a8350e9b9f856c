package sqldb

import (
	"fmt"
	"math"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect represents SQL dialect
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect returns dialect for a driver name
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "pgx", "postgresql":
		return DialectPostgres, nil
	case "mysql":
		return DialectMySQL, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	}
	return "", fmt.Errorf("unsupported SQL driver: %v", driver)
}

func (d Dialect) placeholderFormat() sq.PlaceholderFormat {
	if d == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

func (d Dialect) quote(identifier string) string {
	if d == DialectMySQL {
		return "`" + identifier + "`"
	}
	return `"` + identifier + `"`
}

func (d Dialect) returning() bool {
	return d == DialectPostgres
}

func (d Dialect) likeEscape() string {
	if d == DialectSQLite {
		return ` ESCAPE '\'`
	}
	return ""
}

// unboundedLimit returns LIMIT used with OFFSET only pagination, 0 means the dialect accepts OFFSET alone
func (d Dialect) unboundedLimit() uint64 {
	switch d {
	case DialectMySQL:
		return math.MaxUint64
	case DialectSQLite:
		return math.MaxInt64
	}
	return 0
}
