// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/stretchr/testify/assert"
	"net/url"
	"testing"
)

type color int

func (c color) String() string {
	return []string{"red", "green", "blue"}[c]
}

func TestNormalizeNil(t *testing.T) {
	values, err := NormalizeParams(nil)
	if assert.NoError(t, err) {
		assert.NotNil(t, values)
		assert.Empty(t, values)
	}

	var nilValues url.Values
	values, err = NormalizeParams(nilValues)
	if assert.NoError(t, err) {
		assert.NotNil(t, values)
		assert.Empty(t, values)
	}
}

// TestNormalizeIdentity checks that url.Values are used as is, not
// copied.
func TestNormalizeIdentity(t *testing.T) {
	in := url.Values{"a": {"1"}}
	out, err := NormalizeParams(in)
	if assert.NoError(t, err) {
		out.Set("b", "2")
		assert.Equal(t, "2", in.Get("b"))
	}
}

func TestNormalizeParams(t *testing.T) {
	zero := 0
	var nilPointer *int
	out, err := NormalizeParams(Params{
		"absent":  nil,
		"pointer": nilPointer,
		"string":  "s",
		"int":     17,
		"bool":    true,
		"float":   1.5,
		"deref":   &zero,
		"strings": []string{"x", "y", "x"},
		"mixed":   []interface{}{"a", nil, 2},
		"color":   color(2),
		"colors":  []color{0, 1},
	})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, url.Values{
		"string":  {"s"},
		"int":     {"17"},
		"bool":    {"true"},
		"float":   {"1.5"},
		"deref":   {"0"},
		"strings": {"x", "y", "x"},
		"mixed":   {"a", "2"},
		"color":   {"blue"},
		"colors":  {"red", "green"},
	}, out)
}

func TestNormalizeStringMaps(t *testing.T) {
	out, err := NormalizeParams(map[string]string{"a": "1"})
	if assert.NoError(t, err) {
		assert.Equal(t, url.Values{"a": {"1"}}, out)
	}

	out, err = NormalizeParams(map[string][]string{"a": {"1", "2"}, "b": {}})
	if assert.NoError(t, err) {
		assert.Equal(t, url.Values{"a": {"1", "2"}}, out)
	}

	out, err = NormalizeParams(map[string]interface{}{"a": []int{3, 4}})
	if assert.NoError(t, err) {
		assert.Equal(t, url.Values{"a": {"3", "4"}}, out)
	}
}

func TestNormalizeInvalid(t *testing.T) {
	_, err := NormalizeParams("a=b")
	assert.IsType(t, ErrInvalidArgument{}, err)

	_, err = NormalizeParams(Params{"map": map[string]string{}})
	assert.IsType(t, ErrInvalidArgument{}, err)

	_, err = NormalizeParams(Params{"nested": []interface{}{[]string{"x"}}})
	assert.IsType(t, ErrInvalidArgument{}, err)
}
