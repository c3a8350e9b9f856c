package handler

import "github.com/viant/crudly/store"

// RowResponse represents single row response
type RowResponse struct {
	Row store.Row `json:"row"`
}

// RowsResponse represents batch response
type RowsResponse struct {
	Rows interface{} `json:"rows"`
}
