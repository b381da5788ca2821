// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"errors"
	"fmt"
	"github.com/diffeo/go-mlrest/restclient"
	"github.com/diffeo/go-mlrest/restdata"
	"github.com/urfave/cli"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
)

var errNoArgs = errors.New("no arguments given")

// errStatus is returned when the server answers with a failing HTTP
// status.
type errStatus struct {
	What string
	Resp *restclient.Response
}

func (e errStatus) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.What, e.Resp.Status, e.Resp.Text())
}

// check returns an error if resp is not successful.
func check(what string, resp *restclient.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.OK() {
		return errStatus{What: what, Resp: resp}
	}
	return nil
}

// show copies a successful response body to the output.
func show(what string, resp *restclient.Response, err error) error {
	if err = check(what, resp, err); err != nil {
		return err
	}
	_, err = sess.Out.Write(resp.Body)
	if err == nil && len(resp.Body) > 0 && resp.Body[len(resp.Body)-1] != '\n' {
		_, err = fmt.Fprintln(sess.Out)
	}
	return err
}

// readContent reads a document body from a file, or "-" for stdin.
func readContent(filename string) (restdata.RawJSON, error) {
	if filename == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(filename)
}

var collectionFlag = cli.StringSliceFlag{
	Name:  "collection",
	Usage: "add the document to this collection",
}

var getDocs = cli.Command{
	Name:      "get",
	Usage:     "print documents",
	ArgsUsage: "URI...",
	Action: func(c *cli.Context) error {
		if !c.Args().Present() {
			return errNoArgs
		}
		client, err := sess.Client()
		if err != nil {
			return err
		}
		for _, uri := range c.Args() {
			resp, err := client.Doc(uri, nil)
			if err = show(uri, resp, err); err != nil {
				return err
			}
		}
		return nil
	},
}

var putDoc = cli.Command{
	Name:      "put",
	Usage:     "store a JSON document from a file",
	ArgsUsage: "FILE",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "uri",
			Usage: "document URI (server assigned if omitted)",
		},
		collectionFlag,
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return errNoArgs
		}
		content, err := readContent(c.Args().First())
		if err != nil {
			return err
		}
		client, err := sess.Client()
		if err != nil {
			return err
		}
		params := restclient.Params{"collection": c.StringSlice("collection")}
		resp, err := client.Create(c.String("uri"), content, params)
		return show(c.Args().First(), resp, err)
	},
}

var removeDocs = cli.Command{
	Name:      "rm",
	Usage:     "delete documents",
	ArgsUsage: "URI...",
	Action: func(c *cli.Context) error {
		if !c.Args().Present() {
			return errNoArgs
		}
		client, err := sess.Client()
		if err != nil {
			return err
		}
		resp, err := client.DeleteAll(c.Args(), nil)
		return check("rm", resp, err)
	},
}

var search = cli.Command{
	Name:  "search",
	Usage: "search for documents",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "q",
			Usage: "search text",
		},
		cli.StringSliceFlag{
			Name:  "collection",
			Usage: "only documents in this collection",
		},
		cli.StringFlag{
			Name:  "directory",
			Usage: "only documents with URIs under this prefix",
		},
		cli.IntFlag{
			Name:  "start",
			Value: 1,
			Usage: "index of the first result",
		},
		cli.IntFlag{
			Name:  "page-length",
			Value: 10,
			Usage: "number of results",
		},
		cli.BoolFlag{
			Name:  "delete",
			Usage: "delete the matching documents instead",
		},
	},
	Action: func(c *cli.Context) error {
		client, err := sess.Client()
		if err != nil {
			return err
		}
		params := restclient.Params{
			"collection": c.StringSlice("collection"),
		}
		if q := c.String("q"); q != "" {
			params["q"] = q
		}
		if directory := c.String("directory"); directory != "" {
			params["directory"] = directory
		}
		if c.Bool("delete") {
			resp, err := client.DeleteMatching(params)
			return check("search", resp, err)
		}
		params["start"] = c.Int("start")
		params["pageLength"] = c.Int("page-length")
		resp, err := client.SearchParams(params)
		return show("search", resp, err)
	},
}

var graphs = cli.Command{
	Name:  "graphs",
	Usage: "list graphs, or print one",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "graph",
			Usage: "print this named graph",
		},
		cli.BoolFlag{
			Name:  "default",
			Usage: "print the default graph",
		},
	},
	Action: func(c *cli.Context) error {
		client, err := sess.Client()
		if err != nil {
			return err
		}
		if c.Bool("default") || c.String("graph") != "" {
			resp, err := client.Graph(c.String("graph"), nil)
			return show("graph", resp, err)
		}
		resp, err := client.ListGraphs()
		return show("graphs", resp, err)
	},
}

var options = cli.Command{
	Name:      "options",
	Usage:     "list stored query options, or print one set",
	ArgsUsage: "[NAME]",
	Action: func(c *cli.Context) error {
		client, err := sess.Client()
		if err != nil {
			return err
		}
		if name := c.Args().First(); name != "" {
			resp, err := client.Options(name)
			return show(name, resp, err)
		}
		resp, err := client.ListOptions()
		return show("options", resp, err)
	},
}

// putAll writes every file as a document inside tx.
func putAll(tx *restclient.Transaction, prefix string, files []string, params restclient.Params) error {
	for _, filename := range files {
		content, err := readContent(filename)
		if err != nil {
			return err
		}
		uri := path.Join(prefix, filepath.Base(filename))
		resp, err := tx.Create(uri, content, params)
		if err = check(filename, resp, err); err != nil {
			return err
		}
	}
	return nil
}

var txPut = cli.Command{
	Name:      "tx-put",
	Usage:     "store several documents in one transaction",
	ArgsUsage: "FILE...",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "prefix",
			Value: "/",
			Usage: "URI prefix; each file is stored under its base name",
		},
		cli.StringFlag{
			Name:  "name",
			Usage: "transaction name",
		},
		cli.IntFlag{
			Name:  "time-limit",
			Usage: "transaction time limit in seconds",
		},
		collectionFlag,
	},
	Action: func(c *cli.Context) error {
		if !c.Args().Present() {
			return errNoArgs
		}
		client, err := sess.Client()
		if err != nil {
			return err
		}
		txParams := restclient.Params{}
		if name := c.String("name"); name != "" {
			txParams["name"] = name
		}
		if limit := c.Int("time-limit"); limit > 0 {
			txParams["timeLimit"] = limit
		}
		tx, err := client.TransactionWithParams(txParams)
		if err != nil {
			return err
		}

		params := restclient.Params{"collection": c.StringSlice("collection")}
		err = putAll(tx, c.String("prefix"), c.Args(), params)
		if err != nil {
			// The transaction may never have opened; that
			// error is the interesting one.
			_, _ = tx.Rollback()
			return err
		}
		resp, err := tx.Commit()
		if err = check("commit", resp, err); err != nil {
			return err
		}
		_, err = fmt.Fprintf(sess.Out, "stored %d documents\n", c.NArg())
		return err
	},
}
