package sqldb

import (
	"database/sql"
	"github.com/viant/crudly/store"
)

func scanRows(rows *sql.Rows) ([]store.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var result = make([]store.Row, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err = rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(store.Row, len(columns))
		for i, column := range columns {
			if data, ok := values[i].([]byte); ok {
				row[column] = string(data)
				continue
			}
			row[column] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
