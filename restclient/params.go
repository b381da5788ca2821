// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"fmt"
	"net/url"
	"reflect"
)

// Params is a loosely typed set of query parameters.  A nil value
// omits the key, a slice adds one parameter per element, and any other
// scalar sets a single value.
type Params map[string]interface{}

// NormalizeParams converts a parameter argument into url.Values.  An
// existing url.Values is returned as is, not copied, so changes to
// the result are visible to the caller.  nil produces empty values.
// Params, map[string]interface{}, map[string]string, and
// map[string][]string are converted.  Anything else produces
// ErrInvalidArgument.
func NormalizeParams(in interface{}) (url.Values, error) {
	switch p := in.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		if p == nil {
			return url.Values{}, nil
		}
		return p, nil
	case map[string][]string:
		values := url.Values{}
		for key, vs := range p {
			for _, v := range vs {
				values.Add(key, v)
			}
		}
		return values, nil
	case map[string]string:
		values := url.Values{}
		for key, v := range p {
			values.Set(key, v)
		}
		return values, nil
	case Params:
		return normalizeMap(p)
	case map[string]interface{}:
		return normalizeMap(p)
	}
	return nil, ErrInvalidArgument{What: fmt.Sprintf("params of type %T", in)}
}

func normalizeMap(m map[string]interface{}) (url.Values, error) {
	values := url.Values{}
	for key, v := range m {
		if err := addParam(values, key, v); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// addParam adds one loosely typed value to values.
func addParam(values url.Values, key string, v interface{}) error {
	if v == nil {
		return nil
	}
	if s, isString := v.(string); isString {
		values.Set(key, s)
		return nil
	}
	if ss, isStringSlice := v.([]string); isStringSlice {
		for _, s := range ss {
			values.Add(key, s)
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}
	if stringer, isStringer := v.(fmt.Stringer); isStringer {
		values.Set(key, stringer.String())
		return nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if elem == nil {
				continue
			}
			s, err := paramString(key, elem)
			if err != nil {
				return err
			}
			values.Add(key, s)
		}
		return nil
	case reflect.Ptr:
		return addParam(values, key, rv.Elem().Interface())
	}
	s, err := paramString(key, v)
	if err != nil {
		return err
	}
	values.Set(key, s)
	return nil
}

// paramString formats a single scalar parameter value.
func paramString(key string, v interface{}) (string, error) {
	if stringer, isStringer := v.(fmt.Stringer); isStringer {
		return stringer.String(), nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), nil
	}
	return "", ErrInvalidArgument{What: fmt.Sprintf("value of type %T for param %q", v, key)}
}
