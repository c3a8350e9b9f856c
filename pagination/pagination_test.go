package pagination

import (
	"github.com/stretchr/testify/assert"
	"net/url"
	"testing"
)

func TestFromQuery(t *testing.T) {
	var testCases = []struct {
		description string
		query       string
		expect      *Context
	}{
		{description: "defaults", query: "", expect: &Context{Page: 1, Limit: 20, Take: 20, Skip: 0}},
		{description: "page and limit", query: "page=3&limit=10", expect: &Context{Page: 3, Limit: 10, Take: 10, Skip: 20}},
		{description: "invalid values", query: "page=abc&limit=-5", expect: &Context{Page: 1, Limit: 20, Take: 20, Skip: 0}},
		{description: "zero page", query: "page=0&limit=5", expect: &Context{Page: 1, Limit: 5, Take: 5, Skip: 0}},
		{description: "decimal page", query: "page=2.0", expect: &Context{Page: 2, Limit: 20, Take: 20, Skip: 20}},
	}

	for _, testCase := range testCases {
		values, err := url.ParseQuery(testCase.query)
		assert.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, FromQuery(values), testCase.description)
	}
}

func TestContext_Result(t *testing.T) {
	var testCases = []struct {
		description string
		context     *Context
		count       int
		expect      *Page
	}{
		{
			description: "empty",
			context:     New(0, 0),
			count:       0,
			expect:      &Page{Count: 0, Rows: []interface{}{}, Page: 1, Limit: 20, TotalPages: 0},
		},
		{
			description: "middle page",
			context:     New(2, 10),
			count:       35,
			expect:      &Page{Count: 35, Rows: []interface{}{}, Page: 2, Limit: 10, TotalPages: 4, HasPrev: true, HasNext: true},
		},
		{
			description: "last page",
			context:     New(4, 10),
			count:       35,
			expect:      &Page{Count: 35, Rows: []interface{}{}, Page: 4, Limit: 10, TotalPages: 4, HasPrev: true},
		},
	}

	for _, testCase := range testCases {
		actual := testCase.context.Result(testCase.count, []interface{}{})
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestContext_Overrides(t *testing.T) {
	assert.EqualValues(t, map[string]interface{}{"skip": 40, "take": 20}, New(3, 20).Overrides())
}
