package lang

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Object is implemented by data values that expose named members to
// templates without reflection.
//
// Keys returns the member names in iteration order. Lookup returns the
// member with the given name and whether it exists.
type Object interface {
	Keys() []string
	Lookup(key string) (any, bool)
}

// AddToPath appends a segment to a dotted path.
//
// If both base and segment are empty the result is the root path ".". An
// empty segment or a segment of "." leaves base unchanged. Otherwise the
// segment is joined to base with "." (or used alone if base is empty).
func AddToPath(base, segment string) string {
	switch {
	case base == "" && segment == "":
		return "."

	case segment == "" || segment == ".":
		return base

	case base == "":
		return segment

	default:
		return base + "." + segment
	}
}

// Resolve looks up a dotted path in data.
//
// The empty path and "." both resolve to data itself. Any other path is
// split on "." and walked one segment at a time; the walk stops as soon as a
// segment is missing or its value is falsy (see [Truthy]). A path that
// cannot be fully walked is undefined, reported as (nil, false).
//
// A nil root, typed or untyped, is always undefined.
func Resolve(data any, path string) (any, bool) {
	if isNil(data) {
		return nil, false
	}

	if path == "" || path == "." {
		return data, true
	}

	cur := data

	for seg := range strings.SplitSeq(path, ".") {
		next, ok := Lookup(cur, seg)
		if !ok || !Truthy(next) {
			return nil, false
		}

		cur = next
	}

	return cur, true
}

// Lookup returns the member of v named key.
//
// Members are map entries with string-kinded keys, slice and array elements
// by canonical decimal index, exported struct fields (named by their
// "brace" tag if present), and the members of an [Object]. Pointers and
// interfaces are followed.
func Lookup(v any, key string) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false

	case Object:
		if isNil(x) {
			return nil, false
		}

		return x.Lookup(key)

	case map[string]any:
		val, ok := x[key]

		return val, ok

	case []any:
		if i, ok := index(key, len(x)); ok {
			return x[i], true
		}

		return nil, false
	}

	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return nil, false
	}

	if rv.CanInterface() {
		if obj, ok := rv.Interface().(Object); ok {
			return obj.Lookup(key)
		}
	}

	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false
		}

		mv := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !mv.IsValid() {
			return nil, false
		}

		return mv.Interface(), true

	case reflect.Slice, reflect.Array:
		if i, ok := index(key, rv.Len()); ok {
			return rv.Index(i).Interface(), true
		}

	case reflect.Struct:
		for name, field := range fields(rv) {
			if name == key {
				return field.Interface(), true
			}
		}
	}

	return nil, false
}

// Entries returns an iterator over the members of v in order.
//
// Maps with string-kinded keys are visited in sorted key order, slices and
// arrays by ascending index, structs in field declaration order, and an
// [Object] in the order of its Keys. Any other value, including strings and
// nil, has no members.
func Entries(v any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		switch x := v.(type) {
		case nil:
			return

		case Object:
			if isNil(x) {
				return
			}

			for _, key := range x.Keys() {
				val, _ := x.Lookup(key)
				if !yield(key, val) {
					return
				}
			}

			return

		case map[string]any:
			for _, key := range slices.Sorted(maps.Keys(x)) {
				if !yield(key, x[key]) {
					return
				}
			}

			return

		case []any:
			for i, val := range x {
				if !yield(strconv.Itoa(i), val) {
					return
				}
			}

			return
		}

		rv, ok := indirect(reflect.ValueOf(v))
		if !ok {
			return
		}

		if rv.CanInterface() {
			if obj, ok := rv.Interface().(Object); ok {
				Entries(obj)(yield)

				return
			}
		}

		switch rv.Kind() {
		case reflect.Map:
			if rv.Type().Key().Kind() != reflect.String {
				return
			}

			keys := rv.MapKeys()
			slices.SortFunc(keys, func(a, b reflect.Value) int {
				return strings.Compare(a.String(), b.String())
			})

			for _, key := range keys {
				if !yield(key.String(), rv.MapIndex(key).Interface()) {
					return
				}
			}

		case reflect.Slice, reflect.Array:
			for i := range rv.Len() {
				if !yield(strconv.Itoa(i), rv.Index(i).Interface()) {
					return
				}
			}

		case reflect.Struct:
			for name, field := range fields(rv) {
				if !yield(name, field.Interface()) {
					return
				}
			}
		}
	}
}

// Truthy reports whether v counts as present when walking a path.
//
// nil, false, numeric zero, NaN, the empty string, and nil pointers, maps,
// slices, interfaces, funcs and channels are falsy. Everything else,
// including empty non-nil collections, is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false

	case bool:
		return x

	case string:
		return x != ""
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()

	case reflect.String:
		return rv.Len() > 0

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0

	case reflect.Float32, reflect.Float64:
		f := rv.Float()

		return f != 0 && !math.IsNaN(f)

	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0

	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}

	return true
}

// Stringify converts a resolved value to output text.
//
// Undefined (nil) values produce the empty string. Numbers print in their
// shortest decimal form, switching to exponent form for magnitudes of 1e21
// and above or below 1e-6. Slices and arrays join their stringified elements
// with ",". Values implementing fmt.Stringer or error use those methods.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""

	case string:
		return x

	case []byte:
		return string(x)

	case bool:
		return strconv.FormatBool(x)

	case int:
		return strconv.Itoa(x)

	case float64:
		return formatFloat(x, 64)

	case fmt.Stringer:
		if isNil(x) {
			return ""
		}

		return x.String()

	case error:
		if isNil(x) {
			return ""
		}

		return x.Error()
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		return rv.String()

	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)

	case reflect.Float32:
		return formatFloat(rv.Float(), 32)

	case reflect.Float64:
		return formatFloat(rv.Float(), 64)

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}

		return Stringify(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		part := make([]string, rv.Len())
		for i := range part {
			part[i] = Stringify(rv.Index(i).Interface())
		}

		return strings.Join(part, ",")
	}

	return fmt.Sprint(v)
}

func formatFloat(f float64, bitSize int) string {
	switch abs := math.Abs(f); {
	case math.IsNaN(f):
		return "NaN"

	case math.IsInf(f, 1):
		return "Infinity"

	case math.IsInf(f, -1):
		return "-Infinity"

	case abs >= 1e21 || (abs != 0 && abs < 1e-6):
		return strconv.FormatFloat(f, 'e', -1, bitSize)

	default:
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
}

// index parses key as a canonical decimal index less than n.
func index(key string, n int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= n || strconv.Itoa(i) != key {
		return 0, false
	}

	return i, true
}

// isNil reports whether v is nil or holds a nil pointer, map, slice,
// interface, func or channel.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Invalid:
		return true

	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

// indirect follows pointers and interfaces until it reaches a concrete
// value. It reports false if a nil is encountered.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return rv, false
			}

			if rv.Kind() == reflect.Pointer && rv.CanInterface() {
				if _, ok := rv.Interface().(Object); ok {
					return rv, true
				}
			}

			rv = rv.Elem()

		default:
			return rv, true
		}
	}

	return rv, false
}

// fields returns an iterator over the exported fields of a struct value,
// keyed by their template names.
func fields(rv reflect.Value) iter.Seq2[string, reflect.Value] {
	return func(yield func(string, reflect.Value) bool) {
		rt := rv.Type()

		for i := range rt.NumField() {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}

			name := sf.Name

			if tag, ok := sf.Tag.Lookup("brace"); ok {
				tag, _, _ = strings.Cut(tag, ",")

				switch tag {
				case "-":
					continue

				case "":

				default:
					name = tag
				}
			}

			if !yield(name, rv.Field(i)) {
				return
			}
		}
	}
}
