package sqldb

import (
	"database/sql"
	"github.com/pkg/errors"
	"github.com/viant/crudly/store"
	"sort"
)

// Table represents entity to table mapping
type Table struct {
	Entity     string `json:",omitempty"`
	Table      string `json:",omitempty"`
	PrimaryKey string `json:",omitempty"`
}

// Store represents database/sql backed store
type Store struct {
	db       *sql.DB
	dialect  Dialect
	entities map[string]*Entity
}

func (s *Store) Names() []string {
	var result = make([]string, 0, len(s.entities))
	for name := range s.entities {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (s *Store) Entity(name string) (store.Entity, error) {
	entity, ok := s.entities[name]
	if !ok {
		return nil, store.ErrUnknownEntity
	}
	return entity, nil
}

// New creates a store, table name defaults to entity name, primary key defaults to id
func New(db *sql.DB, dialect Dialect, tables ...*Table) (*Store, error) {
	ret := &Store{db: db, dialect: dialect, entities: map[string]*Entity{}}
	for _, table := range tables {
		if table.Entity == "" {
			return nil, errors.New("table entity was empty")
		}
		if table.Table == "" {
			table.Table = table.Entity
		}
		if table.PrimaryKey == "" {
			table.PrimaryKey = "id"
		}
		for _, identifier := range []string{table.Table, table.PrimaryKey} {
			if !identifierExpr.MatchString(identifier) {
				return nil, errors.Errorf("invalid %v table identifier: %q", table.Entity, identifier)
			}
		}
		ret.entities[table.Entity] = &Entity{db: db, dialect: dialect, table: table}
	}
	return ret, nil
}
