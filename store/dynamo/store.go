package dynamo

import (
	"context"
	"sort"

	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pkg/errors"
	"github.com/viant/crudly/store"
)

// Client is satisfied by the AWS DynamoDB client and by test doubles
type Client interface {
	GetItem(ctx context.Context, params *ddb.GetItemInput, optFns ...func(*ddb.Options)) (*ddb.GetItemOutput, error)
	PutItem(ctx context.Context, params *ddb.PutItemInput, optFns ...func(*ddb.Options)) (*ddb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *ddb.UpdateItemInput, optFns ...func(*ddb.Options)) (*ddb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *ddb.DeleteItemInput, optFns ...func(*ddb.Options)) (*ddb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *ddb.ScanInput, optFns ...func(*ddb.Options)) (*ddb.ScanOutput, error)
}

// Table represents entity to DynamoDB table mapping
type Table struct {
	Entity       string `json:",omitempty"`
	Table        string `json:",omitempty"`
	PartitionKey string `json:",omitempty"`
	SortKey      string `json:",omitempty"`
}

// Store represents DynamoDB backed store
type Store struct {
	client   Client
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

// New creates a store, table name defaults to entity name, partition key defaults to id
func New(client Client, tables ...*Table) (*Store, error) {
	if client == nil {
		return nil, errors.New("dynamodb client was nil")
	}
	ret := &Store{client: client, entities: map[string]*Entity{}}
	for _, table := range tables {
		if table.Entity == "" {
			return nil, errors.New("table entity was empty")
		}
		if table.Table == "" {
			table.Table = table.Entity
		}
		if table.PartitionKey == "" {
			table.PartitionKey = "id"
		}
		ret.entities[table.Entity] = &Entity{client: client, table: table}
	}
	return ret, nil
}
