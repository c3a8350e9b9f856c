package sqldb

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/viant/crudly/store"
	"github.com/viant/toolbox"
)

var identifierExpr = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// builder translates store arguments into squirrel statements
type builder struct {
	dialect Dialect
	table   string
}

func newBuilder(dialect Dialect, table string) *builder {
	return &builder{dialect: dialect, table: dialect.quote(table)}
}

func (b *builder) statement() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(b.dialect.placeholderFormat())
}

func (b *builder) identifier(name string) (string, error) {
	if !identifierExpr.MatchString(name) {
		return "", fmt.Errorf("invalid identifier: %q", name)
	}
	return b.dialect.quote(name), nil
}

func (b *builder) columns(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return []string{"*"}, nil
	}
	var result = make([]string, 0, len(fields))
	for _, field := range fields {
		column, err := b.identifier(field)
		if err != nil {
			return nil, err
		}
		result = append(result, column)
	}
	return result, nil
}

func (b *builder) returning(fields []string) (string, error) {
	columns, err := b.columns(fields)
	if err != nil {
		return "", err
	}
	return "RETURNING " + strings.Join(columns, ", "), nil
}

func (b *builder) selectQuery(args store.Args, limit int) (sq.SelectBuilder, error) {
	columns, err := b.columns(args.Select())
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	query := b.statement().Select(columns...).From(b.table)
	conditions, err := b.conditions(args.Where())
	if err != nil {
		return query, err
	}
	for _, condition := range conditions {
		query = query.Where(condition)
	}
	orderBy, err := b.orderBy(args.OrderBy())
	if err != nil {
		return query, err
	}
	if len(orderBy) > 0 {
		query = query.OrderBy(orderBy...)
	}
	take := args.Take()
	if limit > 0 && (take == 0 || take > limit) {
		take = limit
	}
	return b.paginate(query, args.Skip(), take), nil
}

func (b *builder) countQuery(where map[string]interface{}) (sq.SelectBuilder, error) {
	query := b.statement().Select("COUNT(*)").From(b.table)
	conditions, err := b.conditions(where)
	for _, condition := range conditions {
		query = query.Where(condition)
	}
	return query, err
}

func (b *builder) insertQuery(data map[string]interface{}) (sq.InsertBuilder, error) {
	values, err := b.assignments(data)
	if err != nil {
		return sq.InsertBuilder{}, err
	}
	return b.statement().Insert(b.table).SetMap(values), nil
}

func (b *builder) updateQuery(data, where map[string]interface{}) (sq.UpdateBuilder, error) {
	values, err := b.assignments(data)
	if err != nil {
		return sq.UpdateBuilder{}, err
	}
	query := b.statement().Update(b.table).SetMap(values)
	conditions, err := b.conditions(where)
	for _, condition := range conditions {
		query = query.Where(condition)
	}
	return query, err
}

func (b *builder) deleteQuery(where map[string]interface{}) (sq.DeleteBuilder, error) {
	query := b.statement().Delete(b.table)
	conditions, err := b.conditions(where)
	for _, condition := range conditions {
		query = query.Where(condition)
	}
	return query, err
}

func (b *builder) paginate(query sq.SelectBuilder, skip, take int) sq.SelectBuilder {
	switch {
	case take > 0:
		query = query.Limit(uint64(take))
	case skip > 0:
		if limit := b.dialect.unboundedLimit(); limit > 0 {
			query = query.Limit(limit)
		}
	}
	if skip > 0 {
		query = query.Offset(uint64(skip))
	}
	return query
}

func (b *builder) orderBy(orders []*store.Order) ([]string, error) {
	var result = make([]string, 0, len(orders))
	for _, order := range orders {
		column, err := b.identifier(order.Field)
		if err != nil {
			return nil, err
		}
		direction := " ASC"
		if !order.Ascending {
			direction = " DESC"
		}
		result = append(result, column+direction)
	}
	return result, nil
}

// assignments quotes data keys, squirrel sorts them when building SET and VALUES lists
func (b *builder) assignments(data map[string]interface{}) (map[string]interface{}, error) {
	var result = make(map[string]interface{}, len(data))
	for key, value := range data {
		column, err := b.identifier(key)
		if err != nil {
			return nil, err
		}
		result[column] = value
	}
	return result, nil
}

// conditions returns one predicate per where key, sorted by key
func (b *builder) conditions(where map[string]interface{}) ([]sq.Sqlizer, error) {
	keys := make([]string, 0, len(where))
	for key := range where {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var result []sq.Sqlizer
	for _, key := range keys {
		condition, err := b.entry(key, where[key])
		if err != nil {
			return nil, err
		}
		if condition != nil {
			result = append(result, condition)
		}
	}
	return result, nil
}

func (b *builder) entry(key string, condition interface{}) (sq.Sqlizer, error) {
	switch key {
	case store.LogicalAnd, store.LogicalOr, store.LogicalNot:
		var parts []sq.Sqlizer
		for _, clause := range clauses(condition) {
			conditions, err := b.conditions(clause)
			if err != nil {
				return nil, err
			}
			parts = append(parts, sq.And(conditions))
		}
		if len(parts) == 0 {
			return nil, nil
		}
		switch key {
		case store.LogicalOr:
			return sq.Or(parts), nil
		case store.LogicalNot:
			return negate(sq.Or(parts))
		}
		return sq.And(parts), nil
	}
	column, err := b.identifier(key)
	if err != nil {
		return nil, err
	}
	operators := store.AsMap(condition)
	if operators == nil || !hasOperator(operators) {
		return b.operator(column, store.OpEquals, condition)
	}
	parts, err := b.operators(column, operators)
	if err != nil {
		return nil, fmt.Errorf("invalid %v condition: %w", key, err)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return sq.And(parts), nil
}

func (b *builder) operators(column string, operators map[string]interface{}) ([]sq.Sqlizer, error) {
	ops := make([]string, 0, len(operators))
	for op := range operators {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	var result = make([]sq.Sqlizer, 0, len(ops))
	for _, op := range ops {
		part, err := b.operator(column, op, operators[op])
		if err != nil {
			return nil, err
		}
		result = append(result, part)
	}
	return result, nil
}

func (b *builder) operator(column, op string, operand interface{}) (sq.Sqlizer, error) {
	switch op {
	case store.OpEquals:
		return sq.Eq{column: operand}, nil
	case store.OpNot:
		if operators := store.AsMap(operand); operators != nil && hasOperator(operators) {
			parts, err := b.operators(column, operators)
			if err != nil {
				return nil, err
			}
			return negate(sq.And(parts))
		}
		return sq.NotEq{column: operand}, nil
	case store.OpIn, store.OpNotIn:
		if operand == nil || !toolbox.IsSlice(operand) {
			return nil, fmt.Errorf("%v expects a list", op)
		}
		if op == store.OpIn {
			return sq.Eq{column: toolbox.AsSlice(operand)}, nil
		}
		return sq.NotEq{column: toolbox.AsSlice(operand)}, nil
	case store.OpLt:
		return sq.Lt{column: operand}, nil
	case store.OpLte:
		return sq.LtOrEq{column: operand}, nil
	case store.OpGt:
		return sq.Gt{column: operand}, nil
	case store.OpGte:
		return sq.GtOrEq{column: operand}, nil
	case store.OpContains:
		return b.like(column, "%"+escapeLike(toolbox.AsString(operand))+"%"), nil
	case store.OpStartsWith:
		return b.like(column, escapeLike(toolbox.AsString(operand))+"%"), nil
	case store.OpEndsWith:
		return b.like(column, "%"+escapeLike(toolbox.AsString(operand))), nil
	}
	return nil, fmt.Errorf("unsupported operator: %v", op)
}

func (b *builder) like(column, pattern string) sq.Sqlizer {
	if escape := b.dialect.likeEscape(); escape != "" {
		return sq.Expr(column+" LIKE ?"+escape, pattern)
	}
	return sq.Like{column: pattern}
}

func negate(predicate sq.Sqlizer) (sq.Sqlizer, error) {
	SQL, args, err := predicate.ToSql()
	if err != nil {
		return nil, err
	}
	return sq.Expr("NOT "+SQL, args...), nil
}

func hasOperator(aMap map[string]interface{}) bool {
	for key := range aMap {
		if store.IsOperator(key) {
			return true
		}
	}
	return false
}

func clauses(condition interface{}) []map[string]interface{} {
	if aMap := store.AsMap(condition); aMap != nil {
		return []map[string]interface{}{aMap}
	}
	if condition == nil || !toolbox.IsSlice(condition) {
		return nil
	}
	var result []map[string]interface{}
	for _, item := range toolbox.AsSlice(condition) {
		if aMap := store.AsMap(item); aMap != nil {
			result = append(result, aMap)
		}
	}
	return result
}

func escapeLike(text string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(text)
}
