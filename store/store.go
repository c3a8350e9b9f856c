package store

import (
	"context"
	"errors"
	"sort"
)

var (
	// ErrUnknownEntity is returned for entity names the store does not hold
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrMissingWhere is returned when a single row mutation has no where condition
	ErrMissingWhere = errors.New("where condition was empty")
)

type (
	//Args represents resolved query arguments
	Args map[string]interface{}

	//Row represents a single entity record
	Row map[string]interface{}

	// Entity represents data store operations for a single entity (model)
	Entity interface {
		FindUnique(ctx context.Context, args Args) (Row, error)
		FindFirst(ctx context.Context, args Args) (Row, error)
		FindMany(ctx context.Context, args Args) ([]Row, error)
		Count(ctx context.Context, args Args) (int, error)
		Create(ctx context.Context, args Args) (Row, error)
		CreateMany(ctx context.Context, args Args) (Row, error)
		Update(ctx context.Context, args Args) (Row, error)
		UpdateMany(ctx context.Context, args Args) (Row, error)
		Delete(ctx context.Context, args Args) (Row, error)
		DeleteMany(ctx context.Context, args Args) (Row, error)
	}

	// Store represents a named entities provider
	Store interface {
		Names() []string
		Entity(name string) (Entity, error)
	}
)

const (
	WhereKey   = "where"
	SelectKey  = "select"
	OrderByKey = "orderBy"
	SkipKey    = "skip"
	TakeKey    = "take"
	DataKey    = "data"
	CountKey   = "count"
)

// Where returns where clause argument
func (a Args) Where() map[string]interface{} {
	return asMap(a[WhereKey])
}

// HasWhere returns true when where clause holds at least one condition
func (a Args) HasWhere() bool {
	return len(a.Where()) > 0
}

// Data returns data argument as map
func (a Args) Data() map[string]interface{} {
	return asMap(a[DataKey])
}

// DataList returns data argument as list of maps, a single object is treated as one element list
func (a Args) DataList() []map[string]interface{} {
	switch actual := a[DataKey].(type) {
	case []interface{}:
		var result = make([]map[string]interface{}, 0, len(actual))
		for _, item := range actual {
			if aMap := asMap(item); aMap != nil {
				result = append(result, aMap)
			}
		}
		return result
	case []map[string]interface{}:
		return actual
	case map[string]interface{}:
		return []map[string]interface{}{actual}
	}
	return nil
}

// Select returns selected fields, nil means all fields
func (a Args) Select() []string {
	aMap := asMap(a[SelectKey])
	if len(aMap) == 0 {
		return nil
	}
	var result []string
	for k, v := range aMap {
		if flag, ok := v.(bool); ok && !flag {
			continue
		}
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// Skip returns skip argument
func (a Args) Skip() int {
	return asInt(a[SkipKey])
}

// Take returns take argument, 0 means no limit
func (a Args) Take() int {
	return asInt(a[TakeKey])
}

// WhereOnly returns arguments containing only where clause
func (a Args) WhereOnly() Args {
	if where, ok := a[WhereKey]; ok {
		return Args{WhereKey: where}
	}
	return Args{}
}

// Order represents orderBy entry
type Order struct {
	Field     string
	Ascending bool
}

// OrderBy returns ordering, map and list of maps forms are supported
func (a Args) OrderBy() []*Order {
	var result []*Order
	appendOrder := func(aMap map[string]interface{}) {
		fields := make([]string, 0, len(aMap))
		for field := range aMap {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			text, _ := aMap[field].(string)
			result = append(result, &Order{Field: field, Ascending: text != "desc" && text != "DESC"})
		}
	}
	switch actual := a[OrderByKey].(type) {
	case map[string]interface{}:
		appendOrder(actual)
	case []interface{}:
		for _, item := range actual {
			if aMap := asMap(item); aMap != nil {
				appendOrder(aMap)
			}
		}
	case string:
		result = append(result, &Order{Field: actual, Ascending: true})
	}
	return result
}

// BatchResult returns batch operation result
func BatchResult(count int) Row {
	return Row{CountKey: count}
}
