package flatten

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFlatten(t *testing.T) {
	testCases := []struct {
		description string
		tree        map[string]interface{}
		expect      map[string]interface{}
	}{
		{
			description: "nested map",
			tree:        map[string]interface{}{"where": map[string]interface{}{"id": "$id", "age": map[string]interface{}{"gt": 3}}, "take": 10},
			expect:      map[string]interface{}{"where.id": "$id", "where.age.gt": 3, "take": 10},
		},
		{
			description: "slices are indexed",
			tree:        map[string]interface{}{"OR": []interface{}{map[string]interface{}{"a": 1}, map[string]interface{}{"b": 2}}},
			expect:      map[string]interface{}{"OR.0.a": 1, "OR.1.b": 2},
		},
		{
			description: "typed slice",
			tree:        map[string]interface{}{"in": []string{"x", "y"}},
			expect:      map[string]interface{}{"in.0": "x", "in.1": "y"},
		},
		{
			description: "empty containers kept",
			tree:        map[string]interface{}{"where": map[string]interface{}{}, "ids": []interface{}{}},
			expect:      map[string]interface{}{"where": map[string]interface{}{}, "ids": []interface{}{}},
		},
	}

	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, Flatten(testCase.tree), testCase.description)
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		description string
		tree        map[string]interface{}
	}{
		{
			description: "scalars",
			tree:        map[string]interface{}{"a": 1, "b": "text", "c": true, "d": nil},
		},
		{
			description: "deep nesting",
			tree: map[string]interface{}{
				"where": map[string]interface{}{
					"profile": map[string]interface{}{"name": map[string]interface{}{"contains": "jo"}},
				},
				"orderBy": []interface{}{map[string]interface{}{"id": "desc"}, map[string]interface{}{"name": "asc"}},
			},
		},
		{
			description: "slice of slices",
			tree:        map[string]interface{}{"matrix": []interface{}{[]interface{}{1, 2}, []interface{}{3}}},
		},
		{
			description: "empty containers",
			tree:        map[string]interface{}{"where": map[string]interface{}{}, "ids": []interface{}{}},
		},
	}

	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.tree, Unflatten(Flatten(testCase.tree)), testCase.description)
	}
}

func TestUnflatten_NonConsecutiveIndexes(t *testing.T) {
	testCases := []struct {
		description string
		flat        map[string]interface{}
		expect      map[string]interface{}
	}{
		{
			description: "gap is compacted",
			flat:        map[string]interface{}{"a.0": 1, "a.2": 3},
			expect:      map[string]interface{}{"a": []interface{}{1, 3}},
		},
		{
			description: "leading gap",
			flat:        map[string]interface{}{"where.id.in.1": "b", "where.id.in.2": "c"},
			expect:      map[string]interface{}{"where": map[string]interface{}{"id": map[string]interface{}{"in": []interface{}{"b", "c"}}}},
		},
		{
			description: "index order is numeric",
			flat:        map[string]interface{}{"OR.10.a": 10, "OR.2.a": 2},
			expect:      map[string]interface{}{"OR": []interface{}{map[string]interface{}{"a": 2}, map[string]interface{}{"a": 10}}},
		},
		{
			description: "non canonical index keeps map",
			flat:        map[string]interface{}{"a.01": 1, "a.2": 2},
			expect:      map[string]interface{}{"a": map[string]interface{}{"01": 1, "2": 2}},
		},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, Unflatten(testCase.flat), testCase.description)
	}
}
