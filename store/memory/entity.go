package memory

import (
	"context"
	"fmt"
	"github.com/viant/crudly/store"
	"sort"
	"sync"
)

// Entity represents in memory records of a single model
type Entity struct {
	Name       string
	PrimaryKey string
	mux        sync.RWMutex
	rows       []store.Row
	sequence   int
}

// NewEntity creates an entity, primary key defaults to id, when it is missing on create, it is generated from a sequence
func NewEntity(name, primaryKey string, rows ...store.Row) *Entity {
	if primaryKey == "" {
		primaryKey = "id"
	}
	ret := &Entity{Name: name, PrimaryKey: primaryKey}
	for _, row := range rows {
		ret.rows = append(ret.rows, copyRow(row))
		ret.advance(row[primaryKey])
	}
	return ret
}

func (e *Entity) FindUnique(ctx context.Context, args store.Args) (store.Row, error) {
	return e.FindFirst(ctx, args)
}

func (e *Entity) FindFirst(ctx context.Context, args store.Args) (store.Row, error) {
	rows, err := e.find(args, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (e *Entity) FindMany(ctx context.Context, args store.Args) ([]store.Row, error) {
	return e.find(args, 0)
}

func (e *Entity) Count(ctx context.Context, args store.Args) (int, error) {
	e.mux.RLock()
	defer e.mux.RUnlock()
	matched, err := e.match(args.Where())
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (e *Entity) Create(ctx context.Context, args store.Args) (store.Row, error) {
	data := args.Data()
	if data == nil {
		return nil, fmt.Errorf("%v: data was empty", e.Name)
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	row := e.insert(data)
	return project(row, args.Select()), nil
}

func (e *Entity) CreateMany(ctx context.Context, args store.Args) (store.Row, error) {
	items := args.DataList()
	e.mux.Lock()
	defer e.mux.Unlock()
	for _, item := range items {
		e.insert(item)
	}
	return store.BatchResult(len(items)), nil
}

func (e *Entity) Update(ctx context.Context, args store.Args) (store.Row, error) {
	if !args.HasWhere() {
		return nil, fmt.Errorf("%v: update: %w", e.Name, store.ErrMissingWhere)
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	matched, err := e.match(args.Where())
	if err != nil || len(matched) == 0 {
		return nil, err
	}
	row := e.rows[matched[0]]
	for k, v := range args.Data() {
		row[k] = v
	}
	return project(row, args.Select()), nil
}

func (e *Entity) UpdateMany(ctx context.Context, args store.Args) (store.Row, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	matched, err := e.match(args.Where())
	if err != nil {
		return nil, err
	}
	data := args.Data()
	for _, index := range matched {
		for k, v := range data {
			e.rows[index][k] = v
		}
	}
	return store.BatchResult(len(matched)), nil
}

func (e *Entity) Delete(ctx context.Context, args store.Args) (store.Row, error) {
	if !args.HasWhere() {
		return nil, fmt.Errorf("%v: delete: %w", e.Name, store.ErrMissingWhere)
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	matched, err := e.match(args.Where())
	if err != nil || len(matched) == 0 {
		return nil, err
	}
	row := e.rows[matched[0]]
	e.remove(matched[:1])
	return project(row, args.Select()), nil
}

func (e *Entity) DeleteMany(ctx context.Context, args store.Args) (store.Row, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	matched, err := e.match(args.Where())
	if err != nil {
		return nil, err
	}
	e.remove(matched)
	return store.BatchResult(len(matched)), nil
}

func (e *Entity) find(args store.Args, limit int) ([]store.Row, error) {
	e.mux.RLock()
	defer e.mux.RUnlock()
	matched, err := e.match(args.Where())
	if err != nil {
		return nil, err
	}
	var rows = make([]store.Row, 0, len(matched))
	for _, index := range matched {
		rows = append(rows, e.rows[index])
	}
	if orders := args.OrderBy(); len(orders) > 0 {
		sort.SliceStable(rows, func(i, j int) bool {
			for _, order := range orders {
				cmp := store.Compare(rows[i][order.Field], rows[j][order.Field])
				if cmp == 0 {
					continue
				}
				return (cmp < 0) == order.Ascending
			}
			return false
		})
	}
	skip := args.Skip()
	if skip >= len(rows) {
		return []store.Row{}, nil
	}
	if skip > 0 {
		rows = rows[skip:]
	}
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

func (e *Entity) match(where map[string]interface{}) ([]int, error) {
	var result []int
	for i, row := range e.rows {
		matched, err := store.Match(row, where)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", e.Name, err)
		}
		if matched {
			result = append(result, i)
		}
	}
	return result, nil
}

func (e *Entity) insert(data map[string]interface{}) store.Row {
	row := copyRow(data)
	if e.PrimaryKey != "" {
		if id, ok := row[e.PrimaryKey]; ok {
			e.advance(id)
		} else {
			e.sequence++
			row[e.PrimaryKey] = e.sequence
		}
	}
	e.rows = append(e.rows, row)
	return row
}

func (e *Entity) advance(id interface{}) {
	var value int
	switch actual := id.(type) {
	case int:
		value = actual
	case float64:
		value = int(actual)
	default:
		return
	}
	if value > e.sequence {
		e.sequence = value
	}
}

func (e *Entity) remove(indexes []int) {
	if len(indexes) == 0 {
		return
	}
	removed := make(map[int]bool, len(indexes))
	for _, index := range indexes {
		removed[index] = true
	}
	var rows = make([]store.Row, 0, len(e.rows)-len(indexes))
	for i, row := range e.rows {
		if !removed[i] {
			rows = append(rows, row)
		}
	}
	e.rows = rows
}

func project(row store.Row, fields []string) store.Row {
	if len(fields) == 0 {
		return copyRow(row)
	}
	var result = make(store.Row, len(fields))
	for _, field := range fields {
		if value, ok := row[field]; ok {
			result[field] = value
		}
	}
	return result
}

func copyRow(row map[string]interface{}) store.Row {
	var result = make(store.Row, len(row))
	for k, v := range row {
		result[k] = v
	}
	return result
}
