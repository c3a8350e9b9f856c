package validator

import (
	"fmt"
)

// Type represents validated value type
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
	TypeAny     Type = "any"
)

// Item represents a validation rule for a single request key
type Item struct {
	Key      string  `json:",omitempty"`
	Type     Type    `json:",omitempty"`
	Nullable bool    `json:",omitempty"`
	Items    []*Item `json:",omitempty"`
	//ItemType defines primitive array element type
	ItemType Type `json:",omitempty"`
}

func (i *Item) init(path string) error {
	if i.Key == "" {
		return fmt.Errorf("validation item key was empty at %v", path)
	}
	location := path + "." + i.Key
	switch i.Type {
	case TypeString, TypeNumber, TypeBoolean, TypeAny:
		return nil
	case TypeArray, TypeObject:
		if len(i.Items) == 0 && i.ItemType == "" {
			return fmt.Errorf("items is required for %v", location)
		}
		if i.Type == TypeObject && len(i.Items) == 0 {
			return fmt.Errorf("items is required for %v", location)
		}
		switch i.ItemType {
		case "", TypeString, TypeNumber, TypeBoolean, TypeAny:
		default:
			return fmt.Errorf("unsupported item type %v at %v", i.ItemType, location)
		}
		for _, item := range i.Items {
			if err := item.init(location); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported type %v at %v", i.Type, location)
}
