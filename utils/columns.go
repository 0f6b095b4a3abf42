package utils

import (
	"fmt"
	"reflect"
)

// ColumnList derives the list of column names from the db struct tags of T.
// Fields without a db tag, or tagged "-", are ignored.
func ColumnList[T any](prefix ...string) []string {
	var value T
	t := reflect.TypeOf(value)
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("ColumnList: %T is not a struct", value))
	}

	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		if len(prefix) > 0 {
			tag = fmt.Sprintf("%s.%s", prefix[0], tag)
		}
		columns = append(columns, tag)
	}
	return columns
}
