package flatten

import (
	"github.com/viant/toolbox"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Delimiter joins nested keys
const Delimiter = "."

// Flatten converts nested tree into single level map with Delimiter joined keys.
// Slices are indexed, empty maps and slices are kept as leaves.
func Flatten(tree map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(tree))
	for key, value := range tree {
		flattenValue(key, value, result)
	}
	return result
}

func flattenValue(prefix string, value interface{}, dest map[string]interface{}) {
	switch actual := value.(type) {
	case map[string]interface{}:
		if len(actual) == 0 {
			dest[prefix] = actual
			return
		}
		for key, item := range actual {
			flattenValue(prefix+Delimiter+key, item, dest)
		}
		return
	case []interface{}:
		if len(actual) == 0 {
			dest[prefix] = actual
			return
		}
		for i, item := range actual {
			flattenValue(prefix+Delimiter+strconv.Itoa(i), item, dest)
		}
		return
	case nil, string, []byte:
		dest[prefix] = value
		return
	}
	kind := reflect.TypeOf(value).Kind()
	switch {
	case kind == reflect.Map && toolbox.IsMap(value):
		aMap := toolbox.AsMap(value)
		if len(aMap) == 0 {
			dest[prefix] = value
			return
		}
		for key, item := range aMap {
			flattenValue(prefix+Delimiter+key, item, dest)
		}
	case (kind == reflect.Slice || kind == reflect.Array) && toolbox.IsSlice(value):
		slice := toolbox.AsSlice(value)
		if len(slice) == 0 {
			dest[prefix] = value
			return
		}
		for i, item := range slice {
			flattenValue(prefix+Delimiter+strconv.Itoa(i), item, dest)
		}
	default:
		dest[prefix] = value
	}
}

// Unflatten is Flatten inverse, a level keyed by indexes only is restored as a slice.
// Missing indexes are compacted, {"0": a, "2": c} becomes [a, c].
func Unflatten(flat map[string]interface{}) map[string]interface{} {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	root := map[string]interface{}{}
	for _, key := range keys {
		segments := strings.Split(key, Delimiter)
		node := root
		for _, segment := range segments[:len(segments)-1] {
			child, ok := node[segment].(map[string]interface{})
			if !ok {
				child = map[string]interface{}{}
				node[segment] = child
			}
			node = child
		}
		last := segments[len(segments)-1]
		if _, isNode := node[last].(map[string]interface{}); isNode {
			continue
		}
		node[last] = flat[key]
	}
	for key, value := range root {
		root[key] = restoreSlices(value)
	}
	return root
}

func restoreSlices(value interface{}) interface{} {
	aMap, ok := value.(map[string]interface{})
	if !ok || len(aMap) == 0 {
		return value
	}
	for key, item := range aMap {
		aMap[key] = restoreSlices(item)
	}
	indexes, ok := indexesOf(aMap)
	if !ok {
		return aMap
	}
	sort.Ints(indexes)
	result := make([]interface{}, 0, len(indexes))
	for _, index := range indexes {
		result = append(result, aMap[strconv.Itoa(index)])
	}
	return result
}

// indexesOf returns map keys as indexes when every key is a canonical non negative integer
func indexesOf(aMap map[string]interface{}) ([]int, bool) {
	var result = make([]int, 0, len(aMap))
	for key := range aMap {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || strconv.Itoa(index) != key {
			return nil, false
		}
		result = append(result, index)
	}
	return result, true
}
