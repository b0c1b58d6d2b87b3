package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel inserts one row built from the db-tagged fields of model.
// Embedded structs are flattened; fields tagged db:"-" or untagged are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", nil, fmt.Errorf("insert model for %s is nil", table)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert model for %s must be a struct, got %s", table, v.Kind())
	}

	var cols []string
	var vals []any
	collectColumns(v, &cols, &vals)
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("insert model for %s has no db columns", table)
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

func collectColumns(v reflect.Value, cols *[]string, vals *[]any) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("db") == "" {
			collectColumns(v.Field(i), cols, vals)
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		*cols = append(*cols, name)
		*vals = append(*vals, v.Field(i).Interface())
	}
}
