package memory

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/viant/assertly"
	"github.com/viant/crudly/store"
	"testing"
)

func newUsers() *Entity {
	return NewEntity("User", "id",
		store.Row{"id": 1, "name": "alice", "age": 31},
		store.Row{"id": 2, "name": "bob", "age": 25},
		store.Row{"id": 3, "name": "carol", "age": 40},
	)
}

func TestEntity_Find(t *testing.T) {
	var testCases = []struct {
		description string
		args        store.Args
		expect      []store.Row
	}{
		{
			description: "all",
			args:        store.Args{},
			expect:      []store.Row{{"id": 1, "name": "alice", "age": 31}, {"id": 2, "name": "bob", "age": 25}, {"id": 3, "name": "carol", "age": 40}},
		},
		{
			description: "ordered page with select",
			args:        store.Args{"orderBy": map[string]interface{}{"age": "desc"}, "skip": 1, "take": 1, "select": map[string]interface{}{"name": true}},
			expect:      []store.Row{{"name": "alice"}},
		},
		{
			description: "filter",
			args:        store.Args{"where": map[string]interface{}{"age": map[string]interface{}{"gt": 30}}},
			expect:      []store.Row{{"id": 1, "name": "alice", "age": 31}, {"id": 3, "name": "carol", "age": 40}},
		},
		{
			description: "skip past end",
			args:        store.Args{"skip": 10},
			expect:      []store.Row{},
		},
	}

	for _, testCase := range testCases {
		actual, err := newUsers().FindMany(context.Background(), testCase.args)
		assert.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestEntity_FindDecodedArgs(t *testing.T) {
	var testCases = []struct {
		description string
		args        store.Args
		expect      string
	}{
		{
			description: "json numbers with in operator",
			args: store.Args{
				"where":   map[string]interface{}{"id": map[string]interface{}{"in": []interface{}{1.0, 3.0}}},
				"orderBy": []interface{}{map[string]interface{}{"age": "desc"}},
				"select":  map[string]interface{}{"id": true, "name": true},
			},
			expect: `[{"id":3,"name":"carol"},{"id":1,"name":"alice"}]`,
		},
		{
			description: "logical or with string operators",
			args: store.Args{
				"where": map[string]interface{}{"OR": []interface{}{
					map[string]interface{}{"name": map[string]interface{}{"startsWith": "b"}},
					map[string]interface{}{"name": map[string]interface{}{"endsWith": "ol"}},
				}},
				"select": map[string]interface{}{"name": true},
			},
			expect: `[{"name":"bob"},{"name":"carol"}]`,
		},
	}
	for _, testCase := range testCases {
		actual, err := newUsers().FindMany(context.Background(), testCase.args)
		assert.Nil(t, err, testCase.description)
		assertly.AssertValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestEntity_Mutations(t *testing.T) {
	ctx := context.Background()
	users := newUsers()

	created, err := users.Create(ctx, store.Args{"data": map[string]interface{}{"name": "dave"}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"id": 4, "name": "dave"}, created)

	batch, err := users.CreateMany(ctx, store.Args{"data": []interface{}{map[string]interface{}{"name": "e"}, map[string]interface{}{"name": "f"}}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"count": 2}, batch)

	count, err := users.Count(ctx, store.Args{})
	assert.Nil(t, err)
	assert.Equal(t, 6, count)

	updated, err := users.Update(ctx, store.Args{"where": map[string]interface{}{"id": 2.0}, "data": map[string]interface{}{"age": 26}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"id": 2, "name": "bob", "age": 26}, updated)

	missing, err := users.Update(ctx, store.Args{"where": map[string]interface{}{"id": 99}, "data": map[string]interface{}{"age": 1}})
	assert.Nil(t, err)
	assert.Nil(t, missing)

	_, err = users.Update(ctx, store.Args{"data": map[string]interface{}{"age": 1}})
	assert.ErrorIs(t, err, store.ErrMissingWhere)
	_, err = users.Delete(ctx, store.Args{"where": map[string]interface{}{}})
	assert.ErrorIs(t, err, store.ErrMissingWhere)

	batch, err = users.UpdateMany(ctx, store.Args{"where": map[string]interface{}{"age": nil}, "data": map[string]interface{}{"age": 1}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"count": 3}, batch)

	deleted, err := users.Delete(ctx, store.Args{"where": map[string]interface{}{"name": "alice"}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"id": 1, "name": "alice", "age": 31}, deleted)

	batch, err = users.DeleteMany(ctx, store.Args{"where": map[string]interface{}{"id": map[string]interface{}{"gte": 4}}})
	assert.Nil(t, err)
	assert.EqualValues(t, store.Row{"count": 3}, batch)

	unique, err := users.FindUnique(ctx, store.Args{"where": map[string]interface{}{"id": 1}})
	assert.Nil(t, err)
	assert.Nil(t, unique)

	count, err = users.Count(ctx, store.Args{})
	assert.Nil(t, err)
	assert.Equal(t, 2, count)
}

func TestStore_Entity(t *testing.T) {
	aStore := New(newUsers(), NewEntity("Post", "id"))
	assert.EqualValues(t, []string{"Post", "User"}, aStore.Names())
	_, err := aStore.Entity("User")
	assert.Nil(t, err)
	_, err = aStore.Entity("Comment")
	assert.ErrorIs(t, err, store.ErrUnknownEntity)
}
