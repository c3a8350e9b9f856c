package dynamo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/crudly/store"
)

type fakeClient struct {
	pageSize int
	items    map[string]map[string]types.AttributeValue
	scans    []*ddb.ScanInput
	gets     int
}

func newFakeClient(t *testing.T, rows ...map[string]interface{}) *fakeClient {
	ret := &fakeClient{pageSize: 2, items: map[string]map[string]types.AttributeValue{}}
	for _, row := range rows {
		item, err := attributevalue.MarshalMap(row)
		require.Nil(t, err)
		ret.items[keyOf(item["id"])] = item
	}
	return ret
}

func keyOf(value types.AttributeValue) string {
	switch actual := value.(type) {
	case *types.AttributeValueMemberS:
		return actual.Value
	case *types.AttributeValueMemberN:
		return actual.Value
	}
	return ""
}

func (f *fakeClient) sortedKeys() []string {
	var keys []string
	for key := range f.items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeClient) GetItem(ctx context.Context, params *ddb.GetItemInput, optFns ...func(*ddb.Options)) (*ddb.GetItemOutput, error) {
	f.gets++
	return &ddb.GetItemOutput{Item: f.items[keyOf(params.Key["id"])]}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, params *ddb.PutItemInput, optFns ...func(*ddb.Options)) (*ddb.PutItemOutput, error) {
	key := keyOf(params.Item["id"])
	if _, ok := f.items[key]; ok && params.ConditionExpression != nil {
		return nil, fmt.Errorf("conditional check failed")
	}
	f.items[key] = params.Item
	return &ddb.PutItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, params *ddb.UpdateItemInput, optFns ...func(*ddb.Options)) (*ddb.UpdateItemOutput, error) {
	item := f.items[keyOf(params.Key["id"])]
	assignments := strings.Split(strings.TrimPrefix(*params.UpdateExpression, "SET "), ", ")
	for _, assignment := range assignments {
		pair := strings.Split(assignment, " = ")
		item[params.ExpressionAttributeNames[pair[0]]] = params.ExpressionAttributeValues[pair[1]]
	}
	return &ddb.UpdateItemOutput{Attributes: item}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, params *ddb.DeleteItemInput, optFns ...func(*ddb.Options)) (*ddb.DeleteItemOutput, error) {
	delete(f.items, keyOf(params.Key["id"]))
	return &ddb.DeleteItemOutput{}, nil
}

func (f *fakeClient) Scan(ctx context.Context, params *ddb.ScanInput, optFns ...func(*ddb.Options)) (*ddb.ScanOutput, error) {
	f.scans = append(f.scans, params)
	keys := f.sortedKeys()
	start := 0
	if params.ExclusiveStartKey != nil {
		last := keyOf(params.ExclusiveStartKey["id"])
		for i, key := range keys {
			if key == last {
				start = i + 1
			}
		}
	}
	output := &ddb.ScanOutput{}
	end := start + f.pageSize
	if end < len(keys) {
		output.LastEvaluatedKey = map[string]types.AttributeValue{"id": f.items[keys[end-1]]["id"]}
	} else {
		end = len(keys)
	}
	for _, key := range keys[start:end] {
		output.Items = append(output.Items, f.items[key])
	}
	return output, nil
}

func newUsers(t *testing.T) (store.Entity, *fakeClient) {
	client := newFakeClient(t,
		map[string]interface{}{"id": "u1", "name": "alice", "age": 31},
		map[string]interface{}{"id": "u2", "name": "bob", "age": 25},
		map[string]interface{}{"id": "u3", "name": "carol", "age": 40},
	)
	aStore, err := New(client, &Table{Entity: "User", Table: "users"})
	require.Nil(t, err)
	entity, err := aStore.Entity("User")
	require.Nil(t, err)
	return entity, client
}

func TestEntity_FindUnique(t *testing.T) {
	entity, client := newUsers(t)
	row, err := entity.FindUnique(context.Background(), store.Args{"where": map[string]interface{}{"id": "u2"}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"id": "u2", "name": "bob", "age": 25.0}, row)
	assert.Equal(t, 1, client.gets)

	row, err = entity.FindUnique(context.Background(), store.Args{"where": map[string]interface{}{"id": "u9"}})
	assert.Nil(t, err)
	assert.Nil(t, row)
}

func TestEntity_FindMany(t *testing.T) {
	var testCases = []struct {
		description  string
		args         store.Args
		expect       []store.Row
		expectFilter string
	}{
		{
			description:  "equality pushed into filter",
			args:         store.Args{"where": map[string]interface{}{"name": "bob"}},
			expect:       []store.Row{{"id": "u2", "name": "bob", "age": 25.0}},
			expectFilter: "#n0 = :v0",
		},
		{
			description: "operators matched on items, ordered and paged",
			args: store.Args{
				"where":   map[string]interface{}{"age": map[string]interface{}{"gt": 26}},
				"orderBy": map[string]interface{}{"age": "desc"},
				"take":    1,
				"select":  map[string]interface{}{"name": true},
			},
			expect: []store.Row{{"name": "carol"}},
		},
	}

	for _, testCase := range testCases {
		entity, client := newUsers(t)
		rows, err := entity.FindMany(context.Background(), testCase.args)
		assert.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, rows, testCase.description)
		assert.Len(t, client.scans, 2, testCase.description)
		if testCase.expectFilter != "" {
			assert.Equal(t, testCase.expectFilter, *client.scans[0].FilterExpression, testCase.description)
		} else {
			assert.Nil(t, client.scans[0].FilterExpression, testCase.description)
		}
	}
}

func TestEntity_Mutations(t *testing.T) {
	ctx := context.Background()
	entity, client := newUsers(t)

	created, err := entity.Create(ctx, store.Args{"data": map[string]interface{}{"name": "dave"}})
	assert.Nil(t, err)
	assert.NotEmpty(t, created["id"])
	assert.Len(t, client.items, 4)

	_, err = entity.Create(ctx, store.Args{"data": map[string]interface{}{"id": "u1", "name": "dup"}})
	assert.NotNil(t, err)

	updated, err := entity.Update(ctx, store.Args{"where": map[string]interface{}{"name": "alice"}, "data": map[string]interface{}{"age": 32, "id": "ignored"}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"id": "u1", "name": "alice", "age": 32.0}, updated)

	missing, err := entity.Update(ctx, store.Args{"where": map[string]interface{}{"name": "zed"}, "data": map[string]interface{}{"age": 1}})
	assert.Nil(t, err)
	assert.Nil(t, missing)

	_, err = entity.Update(ctx, store.Args{"data": map[string]interface{}{"age": 1}})
	assert.ErrorIs(t, err, store.ErrMissingWhere)
	_, err = entity.Delete(ctx, store.Args{})
	assert.ErrorIs(t, err, store.ErrMissingWhere)

	deleted, err := entity.Delete(ctx, store.Args{"where": map[string]interface{}{"id": "u2"}})
	assert.Nil(t, err)
	assert.Equal(t, "bob", deleted["name"])

	result, err := entity.DeleteMany(ctx, store.Args{"where": map[string]interface{}{"age": map[string]interface{}{"gte": 32}}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"count": 2}, result)

	count, err := entity.Count(ctx, store.Args{})
	assert.Nil(t, err)
	assert.Equal(t, 1, count)
}
