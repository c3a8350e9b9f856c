package dynamo

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/viant/crudly/store"
)

// Entity represents DynamoDB table backed entity
type Entity struct {
	client Client
	table  *Table
}

// FindUnique reads an item by key when where holds key equality, otherwise it falls back to FindFirst
func (e *Entity) FindUnique(ctx context.Context, args store.Args) (store.Row, error) {
	key, ok, err := e.key(args.Where())
	if err != nil {
		return nil, err
	}
	if !ok || len(args.Where()) != len(key) {
		return e.FindFirst(ctx, args)
	}
	output, err := e.client.GetItem(ctx, &ddb.GetItemInput{TableName: aws.String(e.table.Table), Key: key})
	if err != nil {
		return nil, e.wrap(err, "get item")
	}
	if len(output.Item) == 0 {
		return nil, nil
	}
	row, err := unmarshalRow(output.Item)
	if err != nil {
		return nil, e.wrap(err, "get item")
	}
	return project(row, args.Select()), nil
}

func (e *Entity) FindFirst(ctx context.Context, args store.Args) (store.Row, error) {
	rows, err := e.find(ctx, args, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (e *Entity) FindMany(ctx context.Context, args store.Args) ([]store.Row, error) {
	return e.find(ctx, args, 0)
}

func (e *Entity) Count(ctx context.Context, args store.Args) (int, error) {
	rows, err := e.scan(ctx, args.Where())
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (e *Entity) Create(ctx context.Context, args store.Args) (store.Row, error) {
	data := args.Data()
	if len(data) == 0 {
		return nil, errors.Errorf("%v: create data was empty", e.table.Entity)
	}
	row, err := e.put(ctx, data)
	if err != nil {
		return nil, err
	}
	return project(row, args.Select()), nil
}

func (e *Entity) CreateMany(ctx context.Context, args store.Args) (store.Row, error) {
	items := args.DataList()
	for _, item := range items {
		if _, err := e.put(ctx, item); err != nil {
			return nil, err
		}
	}
	return store.BatchResult(len(items)), nil
}

func (e *Entity) Update(ctx context.Context, args store.Args) (store.Row, error) {
	if !args.HasWhere() {
		return nil, errors.Wrapf(store.ErrMissingWhere, "%v: update", e.table.Entity)
	}
	matched, err := e.FindFirst(ctx, store.Args{store.WhereKey: args[store.WhereKey]})
	if err != nil || matched == nil {
		return nil, err
	}
	row, err := e.update(ctx, matched, args.Data())
	if err != nil {
		return nil, err
	}
	return project(row, args.Select()), nil
}

func (e *Entity) UpdateMany(ctx context.Context, args store.Args) (store.Row, error) {
	rows, err := e.scan(ctx, args.Where())
	if err != nil {
		return nil, err
	}
	data := args.Data()
	for _, row := range rows {
		if _, err = e.update(ctx, row, data); err != nil {
			return nil, err
		}
	}
	return store.BatchResult(len(rows)), nil
}

func (e *Entity) Delete(ctx context.Context, args store.Args) (store.Row, error) {
	if !args.HasWhere() {
		return nil, errors.Wrapf(store.ErrMissingWhere, "%v: delete", e.table.Entity)
	}
	matched, err := e.FindFirst(ctx, store.Args{store.WhereKey: args[store.WhereKey]})
	if err != nil || matched == nil {
		return nil, err
	}
	if err = e.delete(ctx, matched); err != nil {
		return nil, err
	}
	return project(matched, args.Select()), nil
}

func (e *Entity) DeleteMany(ctx context.Context, args store.Args) (store.Row, error) {
	rows, err := e.scan(ctx, args.Where())
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err = e.delete(ctx, row); err != nil {
			return nil, err
		}
	}
	return store.BatchResult(len(rows)), nil
}

func (e *Entity) find(ctx context.Context, args store.Args, limit int) ([]store.Row, error) {
	rows, err := e.scan(ctx, args.Where())
	if err != nil {
		return nil, err
	}
	if orders := args.OrderBy(); len(orders) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, order := range orders {
				cmp := store.Compare(rows[i][order.Field], rows[j][order.Field])
				if cmp != 0 {
					return (cmp < 0) == order.Ascending
				}
			}
			return false
		})
	}
	skip := args.Skip()
	if skip >= len(rows) {
		return []store.Row{}, nil
	}
	rows = rows[skip:]
	take := args.Take()
	if limit > 0 && (take == 0 || take > limit) {
		take = limit
	}
	if take > 0 && take < len(rows) {
		rows = rows[:take]
	}
	fields := args.Select()
	var result = make([]store.Row, 0, len(rows))
	for _, row := range rows {
		result = append(result, project(row, fields))
	}
	return result, nil
}

// scan reads all table pages, equality is pushed into filter expression, remaining conditions are matched on items
func (e *Entity) scan(ctx context.Context, where map[string]interface{}) ([]store.Row, error) {
	expr := newExpression()
	filter, err := expr.filter(where)
	if err != nil {
		return nil, e.wrap(err, "scan")
	}
	input := &ddb.ScanInput{
		TableName:                 aws.String(e.table.Table),
		ExpressionAttributeNames:  expr.attributeNames(),
		ExpressionAttributeValues: expr.attributeValues(),
	}
	if filter != "" {
		input.FilterExpression = aws.String(filter)
	}
	var result = make([]store.Row, 0)
	for {
		output, err := e.client.Scan(ctx, input)
		if err != nil {
			return nil, e.wrap(err, "scan")
		}
		for _, item := range output.Items {
			row, err := unmarshalRow(item)
			if err != nil {
				return nil, e.wrap(err, "scan")
			}
			matched, err := store.Match(row, where)
			if err != nil {
				return nil, e.wrap(err, "scan")
			}
			if matched {
				result = append(result, row)
			}
		}
		if len(output.LastEvaluatedKey) == 0 {
			return result, nil
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
}

func (e *Entity) put(ctx context.Context, data map[string]interface{}) (store.Row, error) {
	row := make(store.Row, len(data)+1)
	for k, v := range data {
		row[k] = v
	}
	if _, ok := row[e.table.PartitionKey]; !ok {
		row[e.table.PartitionKey] = uuid.New().String()
	}
	item, err := attributevalue.MarshalMap(map[string]interface{}(row))
	if err != nil {
		return nil, e.wrap(err, "put item")
	}
	expr := newExpression()
	_, err = e.client.PutItem(ctx, &ddb.PutItemInput{
		TableName:                aws.String(e.table.Table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(" + expr.name(e.table.PartitionKey) + ")"),
		ExpressionAttributeNames: expr.attributeNames(),
	})
	if err != nil {
		return nil, e.wrap(err, "put item")
	}
	return row, nil
}

func (e *Entity) update(ctx context.Context, row store.Row, data map[string]interface{}) (store.Row, error) {
	key, err := e.rowKey(row)
	if err != nil {
		return nil, err
	}
	expr := newExpression()
	updateExpression, err := expr.update(data, e.keyNames()...)
	if err != nil {
		return nil, e.wrap(err, "update item")
	}
	if updateExpression == "" {
		return row, nil
	}
	output, err := e.client.UpdateItem(ctx, &ddb.UpdateItemInput{
		TableName:                 aws.String(e.table.Table),
		Key:                       key,
		UpdateExpression:          aws.String(updateExpression),
		ExpressionAttributeNames:  expr.attributeNames(),
		ExpressionAttributeValues: expr.attributeValues(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, e.wrap(err, "update item")
	}
	if len(output.Attributes) == 0 {
		return row, nil
	}
	updated, err := unmarshalRow(output.Attributes)
	return updated, e.wrap(err, "update item")
}

func (e *Entity) delete(ctx context.Context, row store.Row) error {
	key, err := e.rowKey(row)
	if err != nil {
		return err
	}
	_, err = e.client.DeleteItem(ctx, &ddb.DeleteItemInput{TableName: aws.String(e.table.Table), Key: key})
	return e.wrap(err, "delete item")
}

func (e *Entity) keyNames() []string {
	if e.table.SortKey == "" {
		return []string{e.table.PartitionKey}
	}
	return []string{e.table.PartitionKey, e.table.SortKey}
}

// key returns item key if where holds plain equality for every key attribute
func (e *Entity) key(where map[string]interface{}) (map[string]types.AttributeValue, bool, error) {
	var values = map[string]interface{}{}
	for _, name := range e.keyNames() {
		value, ok := where[name]
		if !ok || value == nil || store.AsMap(value) != nil {
			return nil, false, nil
		}
		values[name] = value
	}
	key, err := attributevalue.MarshalMap(values)
	if err != nil {
		return nil, false, e.wrap(err, "key")
	}
	return key, true, nil
}

func (e *Entity) rowKey(row store.Row) (map[string]types.AttributeValue, error) {
	key, ok, err := e.key(row)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Errorf("%v: item key was missing", e.table.Entity)
	}
	return key, nil
}

func (e *Entity) wrap(err error, operation string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "failed to %v %v", operation, e.table.Entity)
}

func unmarshalRow(item map[string]types.AttributeValue) (store.Row, error) {
	var row map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func project(row store.Row, fields []string) store.Row {
	if len(fields) == 0 {
		return row
	}
	var result = make(store.Row, len(fields))
	for _, field := range fields {
		if value, ok := row[field]; ok {
			result[field] = value
		}
	}
	return result
}
