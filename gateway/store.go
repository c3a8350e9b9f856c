package gateway

import (
	"context"
	"database/sql"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/viant/crudly/config"
	"github.com/viant/crudly/store"
	"github.com/viant/crudly/store/dynamo"
	"github.com/viant/crudly/store/memory"
	"github.com/viant/crudly/store/sqldb"
	_ "modernc.org/sqlite"
)

// NewStore creates a store for supplied connector, returned closer releases connections if any
func NewStore(ctx context.Context, connector *config.Connector) (store.Store, io.Closer, error) {
	switch connector.Kind {
	case config.KindMemory:
		var entities = make([]*memory.Entity, 0, len(connector.Memory))
		for _, entity := range connector.Memory {
			entities = append(entities, memory.NewEntity(entity.Entity, entity.PrimaryKey, entity.Rows...))
		}
		return memory.New(entities...), nil, nil
	case config.KindSQL:
		dialect, err := sqldb.ParseDialect(connector.Driver)
		if err != nil {
			return nil, nil, err
		}
		db, err := sql.Open(driverName(connector.Driver), connector.DSN)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to open %v connection", connector.Driver)
		}
		if err = db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, errors.Wrapf(err, "failed to connect %v", connector.Driver)
		}
		aStore, err := sqldb.New(db, dialect, connector.SQLTables()...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return aStore, db, nil
	case config.KindDynamoDB:
		client, err := newDynamoClient(ctx, connector)
		if err != nil {
			return nil, nil, err
		}
		aStore, err := dynamo.New(client, connector.DynamoTables()...)
		return aStore, nil, err
	}
	return nil, nil, errors.Errorf("unsupported connector kind: %v", connector.Kind)
}

func newDynamoClient(ctx context.Context, connector *config.Connector) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if connector.Region != "" {
		opts = append(opts, awsconfig.WithRegion(connector.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if connector.Endpoint != "" {
			o.BaseEndpoint = aws.String(connector.Endpoint)
		}
	}), nil
}

// driverName maps connector driver to registered database/sql driver name, sqlite uses pure Go driver, sqlite3 the cgo one
func driverName(driver string) string {
	switch strings.ToLower(driver) {
	case "postgresql", "postgres", "pgx":
		return "postgres"
	}
	return strings.ToLower(driver)
}
