package handler

import "fmt"

// Action represents CRUD action name
type Action string

const (
	FindUnique Action = "findUnique"
	FindFirst  Action = "findFirst"
	FindMany   Action = "findMany"
	Create     Action = "create"
	CreateMany Action = "createMany"
	Update     Action = "update"
	UpdateMany Action = "updateMany"
	Delete     Action = "delete"
	DeleteMany Action = "deleteMany"
)

// Actions lists all supported actions
var Actions = []Action{FindUnique, FindFirst, FindMany, Create, CreateMany, Update, UpdateMany, Delete, DeleteMany}

// ParseAction returns action for supplied name
func ParseAction(name string) (Action, error) {
	for _, action := range Actions {
		if string(action) == name {
			return action, nil
		}
	}
	return "", fmt.Errorf("unsupported action: %v", name)
}

// IsUnique returns true for actions that target a single row identified by where condition
func (a Action) IsUnique() bool {
	switch a {
	case FindUnique, Update, Delete:
		return true
	}
	return false
}
