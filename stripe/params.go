package stripe

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// Params are the arguments of an API call. Values may be scalars, nested
// Params or maps, or slices of either.
//
// Params are form encoded with bracket notation:
//
//	stripe.Params{
//	    "amount":   100,
//	    "metadata": stripe.Params{"order": "42"},
//	    "expand":   []string{"customer"},
//	}.Encode().Encode()
//	// amount=100&expand%5B0%5D=customer&metadata%5Border%5D=42
type Params map[string]any

// Encode flattens p into form values. Nil values are dropped.
func (p Params) Encode() url.Values {
	values := make(url.Values)
	for _, k := range sortedKeys(p) {
		encodeValue(values, k, p[k])
	}
	return values
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func encodeValue(values url.Values, key string, v any) {
	switch val := v.(type) {
	case nil:
		return
	case string:
		values.Add(key, val)
	case bool:
		values.Add(key, strconv.FormatBool(val))
	case int:
		values.Add(key, strconv.Itoa(val))
	case int64:
		values.Add(key, strconv.FormatInt(val, 10))
	case float64:
		values.Add(key, strconv.FormatFloat(val, 'f', -1, 64))
	case Params:
		for _, k := range sortedKeys(val) {
			encodeValue(values, key+"["+k+"]", val[k])
		}
	case map[string]any:
		encodeValue(values, key, Params(val))
	case fmt.Stringer:
		values.Add(key, val.String())
	default:
		encodeReflect(values, key, v)
	}
}

func encodeReflect(values url.Values, key string, v any) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return
		}
		encodeValue(values, key, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			encodeValue(values, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			values.Add(key, fmt.Sprint(v))
			return
		}
		nested := make(Params, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nested[iter.Key().String()] = iter.Value().Interface()
		}
		encodeValue(values, key, nested)
	default:
		values.Add(key, fmt.Sprint(v))
	}
}
