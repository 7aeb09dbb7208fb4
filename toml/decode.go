package toml

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// ErrTarget is returned when the decode target is not a non-nil pointer
var ErrTarget = errors.New("toml decode target must be a non-nil pointer")

// Unmarshal parses data and decodes it into v
func Unmarshal(data []byte, v any) error {
	tree, err := Parse(data)
	if err != nil {
		return err
	}
	return Decode(tree, v)
}

// Decode stores a parsed tree into v; struct fields match their `toml` tag
// name, or the field name when untagged
func Decode(tree any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrTarget
	}
	return decode(tree, rv.Elem(), "")
}

func decode(data any, dst reflect.Value, path string) error {
	if data == nil {
		return nil
	}
	switch dst.Kind() {
	case reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if err := decode(data, elem.Elem(), path); err != nil {
			return err
		}
		dst.Set(elem)
	case reflect.Interface:
		dst.Set(reflect.ValueOf(data))
	case reflect.Struct:
		table, ok := data.(map[string]any)
		if !ok {
			return mismatch(path, "table", data)
		}
		return decodeStruct(table, dst, path)
	case reflect.Map:
		return decodeMap(data, dst, path)
	case reflect.Slice:
		return decodeSlice(data, dst, path)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok || dst.OverflowInt(n) {
			return mismatch(path, dst.Type().String(), data)
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := data.(int64)
		if !ok || n < 0 || dst.OverflowUint(uint64(n)) {
			return mismatch(path, dst.Type().String(), data)
		}
		dst.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		// Integers widen so tables can write mass = 1
		var f float64
		switch n := data.(type) {
		case float64:
			f = n
		case int64:
			f = float64(n)
		default:
			return mismatch(path, "float", data)
		}
		if dst.Kind() == reflect.Float32 && math.Abs(f) > math.MaxFloat32 {
			return mismatch(path, "float32", data)
		}
		dst.SetFloat(f)
	case reflect.String:
		str, ok := data.(string)
		if !ok {
			return mismatch(path, "string", data)
		}
		dst.SetString(str)
	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return mismatch(path, "bool", data)
		}
		dst.SetBool(b)
	default:
		return fmt.Errorf("%s: unsupported kind %s", path, dst.Kind())
	}
	return nil
}

func mismatch(path, want string, got any) error {
	if path == "" {
		path = "<root>"
	}
	return fmt.Errorf("%s: cannot decode %T into %s", path, got, want)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func decodeStruct(table map[string]any, dst reflect.Value, path string) error {
	typ := dst.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("toml"), ","); tag == "-" {
			continue
		} else if tag != "" {
			name = tag
		}
		if val, ok := table[name]; ok {
			if err := decode(val, dst.Field(i), join(path, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeMap(data any, dst reflect.Value, path string) error {
	table, ok := data.(map[string]any)
	if !ok {
		return mismatch(path, "table", data)
	}
	if dst.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%s: map key must be string", path)
	}
	out := reflect.MakeMapWithSize(dst.Type(), len(table))
	for k, v := range table {
		elem := reflect.New(dst.Type().Elem()).Elem()
		if err := decode(v, elem, join(path, k)); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), elem)
	}
	dst.Set(out)
	return nil
}

func decodeSlice(data any, dst reflect.Value, path string) error {
	var items []any
	switch list := data.(type) {
	case []any:
		items = list
	case []map[string]any:
		items = make([]any, len(list))
		for i, m := range list {
			items[i] = m
		}
	default:
		return mismatch(path, "array", data)
	}
	out := reflect.MakeSlice(dst.Type(), len(items), len(items))
	for i, item := range items {
		if err := decode(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}
