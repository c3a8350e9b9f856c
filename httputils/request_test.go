package httputils

import (
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequest_Values(t *testing.T) {
	var testCases = []struct {
		description   string
		method        string
		URL           string
		contentType   string
		body          string
		pathVariables map[string]string
		expect        map[string]interface{}
		expectErr     bool
	}{
		{
			description:   "path only",
			method:        http.MethodGet,
			URL:           "/users/3",
			pathVariables: map[string]string{"id": "3"},
			expect:        map[string]interface{}{"id": "3"},
		},
		{
			description:   "query wins over path, first value taken",
			method:        http.MethodGet,
			URL:           "/users/3?id=4&id=5&name=abc",
			pathVariables: map[string]string{"id": "3"},
			expect:        map[string]interface{}{"id": "4", "name": "abc"},
		},
		{
			description:   "body wins over query",
			method:        http.MethodPost,
			URL:           "/users?name=q",
			contentType:   "application/json",
			body:          `{"name":"b","age":3,"tags":["x"]}`,
			pathVariables: map[string]string{},
			expect:        map[string]interface{}{"name": "b", "age": float64(3), "tags": []interface{}{"x"}},
		},
		{
			description: "form body",
			method:      http.MethodPost,
			URL:         "/users",
			contentType: "application/x-www-form-urlencoded",
			body:        "name=f&age=7",
			expect:      map[string]interface{}{"name": "f", "age": "7"},
		},
		{
			description: "empty body",
			method:      http.MethodPost,
			URL:         "/users?a=1",
			contentType: "application/json",
			body:        "  ",
			expect:      map[string]interface{}{"a": "1"},
		},
		{
			description: "malformed JSON body",
			method:      http.MethodPost,
			URL:         "/users",
			contentType: "application/json",
			body:        `{"name":`,
			expectErr:   true,
		},
		{
			description: "JSON array body is rejected",
			method:      http.MethodPost,
			URL:         "/users",
			body:        `[1,2]`,
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		var request *http.Request
		if testCase.body != "" {
			request = httptest.NewRequest(testCase.method, testCase.URL, strings.NewReader(testCase.body))
		} else {
			request = httptest.NewRequest(testCase.method, testCase.URL, nil)
		}
		if testCase.contentType != "" {
			request.Header.Set("Content-Type", testCase.contentType)
		}
		actual, err := RequestOf(request, testCase.pathVariables)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			code, _ := BuildErrorResponse(err)
			assert.Equal(t, http.StatusBadRequest, code, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual.Values(), testCase.description)
	}
}
