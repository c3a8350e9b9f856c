package config

import (
	"fmt"
	"os"

	"github.com/viant/crudly/store"
	"github.com/viant/crudly/store/dynamo"
	"github.com/viant/crudly/store/sqldb"
)

const (
	KindMemory   = "memory"
	KindSQL      = "sql"
	KindDynamoDB = "dynamodb"
)

type (
	//Connector defines data store connection
	Connector struct {
		Kind string
		//Driver database/sql driver name: postgres, mysql or sqlite3
		Driver string `json:",omitempty"`
		//DSN supports ${VAR} environment expansion
		DSN string `json:",omitempty"`
		//Region AWS region, default chain is used when empty
		Region string `json:",omitempty"`
		//Endpoint overrides DynamoDB endpoint, i.e. http://localhost:8000
		Endpoint string          `json:",omitempty"`
		Tables   []*Table        `json:",omitempty"`
		Memory   []*MemoryEntity `json:",omitempty"`
	}

	//Table defines entity mapping for sql and dynamodb connectors
	Table struct {
		Entity       string
		Table        string `json:",omitempty"`
		PrimaryKey   string `json:",omitempty"`
		PartitionKey string `json:",omitempty"`
		SortKey      string `json:",omitempty"`
	}

	//MemoryEntity defines in memory entity with seed rows
	MemoryEntity struct {
		Entity     string
		PrimaryKey string      `json:",omitempty"`
		Rows       []store.Row `json:",omitempty"`
	}
)

// Init expands environment variables
func (c *Connector) Init() {
	c.DSN = os.ExpandEnv(c.DSN)
	c.Endpoint = os.ExpandEnv(c.Endpoint)
	if c.Kind == "" {
		c.Kind = KindMemory
	}
}

// Validate checks connector
func (c *Connector) Validate() error {
	switch c.Kind {
	case KindMemory:
		for i, entity := range c.Memory {
			if entity.Entity == "" {
				return fmt.Errorf("memory[%v]: entity was empty", i)
			}
		}
		return nil
	case KindSQL:
		if c.Driver == "" {
			return fmt.Errorf("sql connector: driver was empty")
		}
		if c.DSN == "" {
			return fmt.Errorf("sql connector: DSN was empty")
		}
		if _, err := sqldb.ParseDialect(c.Driver); err != nil {
			return err
		}
	case KindDynamoDB:
	default:
		return fmt.Errorf("unsupported connector kind: %v", c.Kind)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("%v connector: tables were empty", c.Kind)
	}
	for i, table := range c.Tables {
		if table.Entity == "" {
			return fmt.Errorf("%v connector: table[%v] entity was empty", c.Kind, i)
		}
	}
	return nil
}

// SQLTables returns database/sql table mapping
func (c *Connector) SQLTables() []*sqldb.Table {
	var result = make([]*sqldb.Table, 0, len(c.Tables))
	for _, table := range c.Tables {
		result = append(result, &sqldb.Table{Entity: table.Entity, Table: table.Table, PrimaryKey: table.PrimaryKey})
	}
	return result
}

// DynamoTables returns DynamoDB table mapping
func (c *Connector) DynamoTables() []*dynamo.Table {
	var result = make([]*dynamo.Table, 0, len(c.Tables))
	for _, table := range c.Tables {
		partitionKey := table.PartitionKey
		if partitionKey == "" {
			partitionKey = table.PrimaryKey
		}
		result = append(result, &dynamo.Table{Entity: table.Entity, Table: table.Table, PartitionKey: partitionKey, SortKey: table.SortKey})
	}
	return result
}
