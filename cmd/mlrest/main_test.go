// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"bytes"
	"github.com/diffeo/go-mlrest/memory"
	"github.com/diffeo/go-mlrest/restclient"
	"github.com/diffeo/go-mlrest/restserver"
	"github.com/stretchr/testify/assert"
	"io/ioutil"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// run runs the command-line app against a fresh server and returns
// what it printed.
func run(t *testing.T, store *memory.Store, args ...string) (string, error) {
	server := httptest.NewServer(restserver.NewRouter(store))
	defer server.Close()

	var out bytes.Buffer
	sess = session{Out: &out}
	argv := append([]string{"mlrest", "--base-uri", server.URL}, args...)
	err := newApp().Run(argv)
	return out.String(), err
}

func TestLoadConfigFile(t *testing.T) {
	server := httptest.NewServer(restserver.NewRouter(memory.New()))
	defer server.Close()
	t.Setenv(restclient.BaseURIEnv, "")
	os.Unsetenv(restclient.BaseURIEnv)

	dir := t.TempDir()
	filename := filepath.Join(dir, "mlrest.yaml")
	err := ioutil.WriteFile(filename, []byte(
		"base_uri: "+server.URL+"\n"+
			"version: v2\n"+
			"database: Other\n"+
			"log_level: warn\n"), 0644)
	if !assert.NoError(t, err) {
		return
	}

	sess = session{Out: ioutil.Discard}
	err = newApp().Run([]string{"mlrest", "--config", filename, "--database", "Flag", "options"})
	// The server only speaks v1
	assert.IsType(t, errStatus{}, err)
	assert.Equal(t, server.URL, sess.Config.BaseURI)
	assert.Equal(t, "v2", sess.Config.Version)
	assert.Equal(t, "Flag", sess.Config.Database)
	assert.Equal(t, "warn", sess.Config.LogLevel)
}

func TestPutGetRemove(t *testing.T) {
	store := memory.New()
	dir := t.TempDir()
	filename := filepath.Join(dir, "doc.json")
	if !assert.NoError(t, ioutil.WriteFile(filename, []byte(`{"a":1}`), 0644)) {
		return
	}

	_, err := run(t, store, "put", "--uri", "/doc.json", "--collection", "c", filename)
	assert.NoError(t, err)

	out, err := run(t, store, "get", "/doc.json")
	if assert.NoError(t, err) {
		assert.Equal(t, "{\"a\":1}\n", out)
	}

	_, err = run(t, store, "rm", "/doc.json")
	assert.NoError(t, err)
	_, err = run(t, store, "get", "/doc.json")
	assert.IsType(t, errStatus{}, err)
}

func TestTxPut(t *testing.T) {
	store := memory.New()
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a.json", "b.json"} {
		filename := filepath.Join(dir, name)
		if !assert.NoError(t, ioutil.WriteFile(filename, []byte(`{}`), 0644)) {
			return
		}
		files = append(files, filename)
	}

	out, err := run(t, store, append([]string{"tx-put", "--prefix", "/in/"}, files...)...)
	if assert.NoError(t, err) {
		assert.Equal(t, "stored 2 documents\n", out)
	}
	uris, err := store.Search(memory.Scope{}, memory.Query{Directory: "/in/"})
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"/in/a.json", "/in/b.json"}, uris)
	}

	// A missing file rolls the whole transaction back
	_, err = run(t, store, "tx-put", "--prefix", "/out/", files[0], filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, store.OpenTransactions())
	uris, err = store.Search(memory.Scope{}, memory.Query{Directory: "/out/"})
	if assert.NoError(t, err) {
		assert.Empty(t, uris)
	}
}

func TestBench(t *testing.T) {
	store := memory.New()
	_, err := run(t, store, "bench", "--count", "20", "--concurrency", "4")
	assert.NoError(t, err)
	uris, err := store.Search(memory.Scope{}, memory.Query{Collections: []string{"bench"}})
	if assert.NoError(t, err) {
		assert.Len(t, uris, 20)
	}
}
