package crudly

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/crudly/handler"
	"github.com/viant/crudly/router"
	"github.com/viant/crudly/store"
	"github.com/viant/crudly/store/memory"
)

func TestService_HTTPHandler(t *testing.T) {
	service := New(memory.New(memory.NewEntity("Post", "id", store.Row{"id": 1, "title": "hello"})))
	require.Nil(t, service.Init(map[string]handler.GroupOptions{
		"Post": {handler.Delete: {Template: map[string]interface{}{"where": map[string]interface{}{"id": "$id$number"}}}},
	}))
	aHandler, err := service.HTTPHandler([]*router.Route{
		{URI: "/posts", Entity: "Post", Action: handler.FindMany},
		{URI: "/posts/{id}", Entity: "Post", Action: handler.Delete},
	})
	require.Nil(t, err)

	var testCases = []struct {
		description  string
		method       string
		URI          string
		expectStatus int
		expectBody   string
	}{
		{description: "delete", method: http.MethodDelete, URI: "/posts/1", expectStatus: http.StatusOK, expectBody: `{"row":{"id":1,"title":"hello"}}`},
		{description: "delete missing", method: http.MethodDelete, URI: "/posts/1", expectStatus: http.StatusNotFound},
		{description: "empty list", method: http.MethodGet, URI: "/posts", expectStatus: http.StatusOK, expectBody: `{"count":0,"rows":[],"page":1,"limit":20,"totalPages":0,"hasPrev":false,"hasNext":false}`},
	}
	for _, testCase := range testCases {
		recorder := httptest.NewRecorder()
		aHandler.ServeHTTP(recorder, httptest.NewRequest(testCase.method, testCase.URI, nil))
		assert.Equal(t, testCase.expectStatus, recorder.Code, testCase.description)
		if testCase.expectBody != "" {
			assert.JSONEq(t, testCase.expectBody, recorder.Body.String(), testCase.description)
		}
	}
	group, err := service.Lookup("Post")
	require.Nil(t, err)
	assert.Equal(t, "Post", group.Entity)
	assert.NotEmpty(t, Version)
}
