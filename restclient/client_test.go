// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/url"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	c, err := New(Options{BaseURI: "http://localhost:8000/"})
	if assert.NoError(t, err) {
		assert.Equal(t, "http://localhost:8000/", c.BaseURI())
		assert.Equal(t, "/", c.Endpoint())
		assert.Equal(t, "v1", c.Version())
		assert.Equal(t, "", c.DatabaseName())
	}
}

func TestNewBaseURI(t *testing.T) {
	t.Setenv(BaseURIEnv, "")
	_, err := New(Options{})
	assert.Equal(t, ErrMissingBaseURI, err)

	t.Setenv(BaseURIEnv, "http://env.example.com/")
	c, err := New(Options{})
	if assert.NoError(t, err) {
		assert.Equal(t, "http://env.example.com/", c.BaseURI())
	}

	_, err = New(Options{BaseURI: "/relative"})
	assert.IsType(t, ErrInvalidURL{}, err)

	_, err = New(Options{BaseURI: "http://[::1"})
	assert.IsType(t, ErrInvalidURL{}, err)
}

func TestNewMissingHTTPClient(t *testing.T) {
	_, err := NewWithHTTPClient(Options{BaseURI: "http://localhost/"}, nil)
	assert.Equal(t, ErrMissingDependency{Name: "http client"}, err)
}

func TestCreate(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)

	_, err := c.Create("", map[string]interface{}{"a": 1}, nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodPost, sent.Method)
		assert.Equal(t, "/v1/documents", sent.Path)
		assert.Empty(t, sent.Query)
		assert.Equal(t, `{"a":1}`, string(sent.Body))
	}

	_, err = c.CreateAutoURI(map[string]interface{}{"a": 1}, Params{"collection": "c"})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodPost, sent.Method)
		assert.Equal(t, url.Values{"collection": {"c"}}, sent.Query)
	}

	_, err = c.Create("/a.json", map[string]interface{}{"a": 1}, Params{"collection": "c"})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodPut, sent.Method)
		assert.Equal(t, url.Values{"uri": {"/a.json"}, "collection": {"c"}}, sent.Query)
	}

	_, err = c.Update("/a.json", restdata.RawJSON(`[1,2]`), nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodPut, sent.Method)
		assert.Equal(t, "[1,2]", string(sent.Body))
	}
}

func TestMissingURI(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)
	_, err := c.Doc("", nil)
	assert.Equal(t, ErrMissingArgument{What: "document URI"}, err)
	_, err = c.Update("", nil, nil)
	assert.Equal(t, ErrMissingArgument{What: "document URI"}, err)
	_, err = c.Delete("", nil)
	assert.Equal(t, ErrMissingArgument{What: "document URI"}, err)
	_, err = c.Values("", nil, nil)
	assert.Equal(t, ErrMissingArgument{What: "values definition name"}, err)
	_, err = c.Options("")
	assert.Equal(t, ErrMissingArgument{What: "name"}, err)
	_, err = c.TransactionDetails("")
	assert.Equal(t, ErrMissingArgument{What: "transaction id"}, err)
	_, err = c.CommitTransaction("")
	assert.Equal(t, ErrMissingArgument{What: "transaction id"}, err)
	assert.Empty(t, fake.Requests())
}

func TestDeleteAll(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)

	_, err := c.DeleteAll([]string{"a", "b"}, nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodDelete, sent.Method)
		assert.Equal(t, "/v1/documents", sent.Path)
		assert.Equal(t, url.Values{"uri": {"a", "b"}}, sent.Query)
	}

	_, err = c.DeleteMatching(Params{"collection": "x"})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodDelete, sent.Method)
		assert.Equal(t, "/v1/search", sent.Path)
		assert.Equal(t, url.Values{"collection": {"x"}}, sent.Query)
	}

	_, err = c.DeleteAll(nil, nil)
	assert.Equal(t, ErrInvalidArgument{What: "document URI list"}, err)
}

func TestSearchAndSuggest(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)

	_, err := c.SearchParams(Params{"q": "cat"})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodPost, sent.Method)
		assert.Equal(t, "/v1/search", sent.Path)
		assert.Equal(t, url.Values{"q": {"cat"}}, sent.Query)
		assert.Empty(t, sent.Body)
	}

	_, err = c.Search(map[string]interface{}{"search": map[string]interface{}{"qtext": "dog"}}, nil)
	if assert.NoError(t, err) {
		assert.Equal(t, `{"search":{"qtext":"dog"}}`, string(fake.Last().Body))
	}

	_, err = c.SuggestParams("ca", Params{"limit": 5})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, "/v1/suggest", sent.Path)
		assert.Equal(t, url.Values{"partial-q": {"ca"}, "limit": {"5"}}, sent.Query)
	}

	_, err = c.ValuesParams("by name", nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodPost, sent.Method)
		assert.Equal(t, "/v1/values/by name", sent.Path)
	}

	_, err = c.ListValues(nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, http.MethodGet, sent.Method)
		assert.Equal(t, "/v1/values", sent.Path)
	}
}

func TestListGraphs(t *testing.T) {
	fake := &fakeHTTP{Handler: func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", restdata.URIListMediaType)
		w.Header().Set("X-Extra", "kept")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("a\nb\n\n"))
	}}
	c := newFakeClient(t, fake)
	resp, err := c.ListGraphs()
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, restdata.URIListMediaType, fake.Last().Header.Get("Accept"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "kept", resp.Header.Get("X-Extra"))
	var names []string
	if assert.NoError(t, resp.Decode(&names)) {
		assert.Equal(t, []string{"a", "b"}, names)
	}
}

func TestListGraphsFailure(t *testing.T) {
	fake := &fakeHTTP{Handler: func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down\n"))
	}}
	c := newFakeClient(t, fake)
	resp, err := c.ListGraphs()
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "down\n", resp.Text())
	}
}

func TestGraphs(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)

	_, err := c.Graph("", nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, url.Values{"default": {""}}, sent.Query)
		assert.Equal(t, restdata.RDFJSONMediaType, sent.Header.Get("Accept"))
	}

	_, err = c.Graph("http://example.com/g", nil)
	if assert.NoError(t, err) {
		assert.Equal(t, url.Values{"graph": {"http://example.com/g"}}, fake.Last().Query)
	}

	_, err = c.Things([]string{"x", "y"}, nil)
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, "/v1/graphs/things", sent.Path)
		assert.Equal(t, url.Values{"iri": {"x", "y"}}, sent.Query)
	}

	_, err = c.Thing("", nil)
	assert.Equal(t, ErrInvalidArgument{What: "IRI"}, err)
	_, err = c.Things(nil, nil)
	assert.Equal(t, ErrInvalidArgument{What: "IRI list"}, err)
}

func TestNotImplemented(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)
	var err error

	_, err = c.QBE(nil, nil)
	assert.Equal(t, ErrNotImplemented{Method: "QBE"}, err)
	_, err = c.Patch("/a", nil, nil)
	assert.Equal(t, ErrNotImplemented{Method: "Patch"}, err)
	_, err = c.SPARQL("SELECT * WHERE {}")
	assert.Equal(t, ErrNotImplemented{Method: "SPARQL"}, err)
	_, err = c.Extension("ext", nil)
	assert.Equal(t, ErrNotImplemented{Method: "Extension"}, err)
	_, err = c.Eval("1", nil)
	assert.Equal(t, ErrNotImplemented{Method: "Eval"}, err)
	_, err = c.Invoke("/m.sjs", nil)
	assert.Equal(t, ErrNotImplemented{Method: "Invoke"}, err)
	assert.Empty(t, fake.Requests())
}

func TestDatabaseView(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)
	db, err := c.Database("x")
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "x", db.DatabaseName())
	assert.Equal(t, "", c.DatabaseName())

	_, err = c.Doc("/a.json", nil)
	if !assert.NoError(t, err) {
		return
	}
	plain := fake.Last()

	_, err = db.Doc("/a.json", Params{"database": "y"})
	if assert.NoError(t, err) {
		sent := fake.Last()
		assert.Equal(t, plain.Path, sent.Path)
		assert.Equal(t, url.Values{"uri": {"/a.json"}, "database": {"x"}}, sent.Query)
	}

	_, err = db.Database("z")
	assert.Equal(t, ErrNotSupported{Method: "Database"}, err)
	_, err = c.Database("")
	assert.Equal(t, ErrMissingArgument{What: "database name"}, err)
}

func TestOptions(t *testing.T) {
	fake := &fakeHTTP{}
	c := newFakeClient(t, fake)
	_, err := c.ListOptions()
	if assert.NoError(t, err) {
		assert.Equal(t, "/v1/config/query", fake.Last().Path)
	}
	_, err = c.Options("all")
	if assert.NoError(t, err) {
		assert.Equal(t, "/v1/config/query/all", fake.Last().Path)
	}
}
