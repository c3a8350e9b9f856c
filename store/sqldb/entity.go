package sqldb

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/viant/crudly/store"
)

// Entity represents table backed entity
type Entity struct {
	db      *sql.DB
	dialect Dialect
	table   *Table
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (e *Entity) FindUnique(ctx context.Context, args store.Args) (store.Row, error) {
	return e.FindFirst(ctx, args)
}

func (e *Entity) FindFirst(ctx context.Context, args store.Args) (store.Row, error) {
	query, err := e.sqlBuilder().selectQuery(args, 1)
	if err != nil {
		return nil, e.wrap(err, "select")
	}
	return e.queryRow(ctx, e.db, query)
}

func (e *Entity) FindMany(ctx context.Context, args store.Args) ([]store.Row, error) {
	query, err := e.sqlBuilder().selectQuery(args, 0)
	if err != nil {
		return nil, e.wrap(err, "select")
	}
	return e.query(ctx, e.db, query)
}

func (e *Entity) Count(ctx context.Context, args store.Args) (int, error) {
	query, err := e.sqlBuilder().countQuery(args.Where())
	if err != nil {
		return 0, e.wrap(err, "count")
	}
	SQL, params, err := query.ToSql()
	if err != nil {
		return 0, e.wrap(err, "count")
	}
	rows, err := e.db.QueryContext(ctx, SQL, params...)
	if err != nil {
		return 0, e.wrap(err, "count")
	}
	defer rows.Close()
	count := 0
	if rows.Next() {
		if err = rows.Scan(&count); err != nil {
			return 0, e.wrap(err, "count")
		}
	}
	return count, e.wrap(rows.Err(), "count")
}

func (e *Entity) Create(ctx context.Context, args store.Args) (store.Row, error) {
	data := args.Data()
	if len(data) == 0 {
		return nil, errors.Errorf("%v: create data was empty", e.table.Entity)
	}
	b := e.sqlBuilder()
	query, err := b.insertQuery(data)
	if err != nil {
		return nil, e.wrap(err, "create")
	}
	if e.dialect.returning() {
		suffix, err := b.returning(args.Select())
		if err != nil {
			return nil, e.wrap(err, "create")
		}
		return e.queryRow(ctx, e.db, query.Suffix(suffix))
	}
	result, err := e.exec(ctx, e.db, query)
	if err != nil {
		return nil, e.wrap(err, "create")
	}
	id, ok := data[e.table.PrimaryKey]
	if !ok {
		if id, err = result.LastInsertId(); err != nil {
			return nil, e.wrap(err, "create")
		}
	}
	return e.FindFirst(ctx, store.Args{store.WhereKey: map[string]interface{}{e.table.PrimaryKey: id}, store.SelectKey: args[store.SelectKey]})
}

func (e *Entity) CreateMany(ctx context.Context, args store.Args) (store.Row, error) {
	items := args.DataList()
	if len(items) == 0 {
		return store.BatchResult(0), nil
	}
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, e.wrap(err, "createMany")
	}
	b := e.sqlBuilder()
	for _, item := range items {
		query, err := b.insertQuery(item)
		if err == nil {
			_, err = e.exec(ctx, tx, query)
		}
		if err != nil {
			_ = tx.Rollback()
			return nil, e.wrap(err, "createMany")
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, e.wrap(err, "createMany")
	}
	return store.BatchResult(len(items)), nil
}

// Update modifies the first row matching where, the row is addressed by its primary key on every dialect
func (e *Entity) Update(ctx context.Context, args store.Args) (store.Row, error) {
	if !args.HasWhere() {
		return nil, errors.Wrapf(store.ErrMissingWhere, "%v: update", e.table.Entity)
	}
	data := args.Data()
	if len(data) == 0 {
		return nil, errors.Errorf("%v: update data was empty", e.table.Entity)
	}
	id, err := e.firstKey(ctx, args)
	if err != nil || id == nil {
		return nil, err
	}
	b := e.sqlBuilder()
	byKey := map[string]interface{}{e.table.PrimaryKey: id}
	query, err := b.updateQuery(data, byKey)
	if err != nil {
		return nil, e.wrap(err, "update")
	}
	if e.dialect.returning() {
		suffix, err := b.returning(args.Select())
		if err != nil {
			return nil, e.wrap(err, "update")
		}
		return e.queryRow(ctx, e.db, query.Suffix(suffix))
	}
	if _, err = e.exec(ctx, e.db, query); err != nil {
		return nil, e.wrap(err, "update")
	}
	if value, ok := data[e.table.PrimaryKey]; ok {
		byKey[e.table.PrimaryKey] = value
	}
	return e.FindFirst(ctx, store.Args{store.WhereKey: byKey, store.SelectKey: args[store.SelectKey]})
}

func (e *Entity) UpdateMany(ctx context.Context, args store.Args) (store.Row, error) {
	data := args.Data()
	if len(data) == 0 {
		return nil, errors.Errorf("%v: update data was empty", e.table.Entity)
	}
	query, err := e.sqlBuilder().updateQuery(data, args.Where())
	if err != nil {
		return nil, e.wrap(err, "updateMany")
	}
	return e.affected(ctx, "updateMany", query)
}

func (e *Entity) Delete(ctx context.Context, args store.Args) (store.Row, error) {
	if !args.HasWhere() {
		return nil, errors.Wrapf(store.ErrMissingWhere, "%v: delete", e.table.Entity)
	}
	row, err := e.FindFirst(ctx, store.Args{store.WhereKey: args[store.WhereKey]})
	if err != nil || row == nil {
		return nil, err
	}
	query, err := e.sqlBuilder().deleteQuery(map[string]interface{}{e.table.PrimaryKey: row[e.table.PrimaryKey]})
	if err != nil {
		return nil, e.wrap(err, "delete")
	}
	if _, err = e.exec(ctx, e.db, query); err != nil {
		return nil, e.wrap(err, "delete")
	}
	return project(row, args.Select()), nil
}

func (e *Entity) DeleteMany(ctx context.Context, args store.Args) (store.Row, error) {
	query, err := e.sqlBuilder().deleteQuery(args.Where())
	if err != nil {
		return nil, e.wrap(err, "deleteMany")
	}
	return e.affected(ctx, "deleteMany", query)
}

func (e *Entity) sqlBuilder() *builder {
	return newBuilder(e.dialect, e.table.Table)
}

func (e *Entity) firstKey(ctx context.Context, args store.Args) (interface{}, error) {
	row, err := e.FindFirst(ctx, store.Args{
		store.WhereKey:  args[store.WhereKey],
		store.SelectKey: map[string]interface{}{e.table.PrimaryKey: true},
	})
	if err != nil || row == nil {
		return nil, err
	}
	return row[e.table.PrimaryKey], nil
}

func (e *Entity) exec(ctx context.Context, db querier, statement sq.Sqlizer) (sql.Result, error) {
	SQL, params, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	return db.ExecContext(ctx, SQL, params...)
}

func (e *Entity) affected(ctx context.Context, operation string, statement sq.Sqlizer) (store.Row, error) {
	result, err := e.exec(ctx, e.db, statement)
	if err != nil {
		return nil, e.wrap(err, operation)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, e.wrap(err, operation)
	}
	return store.BatchResult(int(affected)), nil
}

func (e *Entity) queryRow(ctx context.Context, db querier, statement sq.Sqlizer) (store.Row, error) {
	rows, err := e.query(ctx, db, statement)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (e *Entity) query(ctx context.Context, db querier, statement sq.Sqlizer) ([]store.Row, error) {
	SQL, params, err := statement.ToSql()
	if err != nil {
		return nil, e.wrap(err, "query")
	}
	rows, err := db.QueryContext(ctx, SQL, params...)
	if err != nil {
		return nil, e.wrap(err, "query")
	}
	defer rows.Close()
	result, err := scanRows(rows)
	return result, e.wrap(err, "query")
}

func (e *Entity) wrap(err error, operation string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "failed to %v %v", operation, e.table.Entity)
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
