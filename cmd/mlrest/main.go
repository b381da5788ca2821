// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Mlrest is a command-line client for the document-and-search REST
// API.  Global settings come from an optional YAML file and
// command-line flags, with flags winning:
//
//     base_uri: http://localhost:8000/
//     endpoint: /
//     version: v1
//     database: Documents
//     log_level: info
//
// Response bodies are copied to standard output.
package main

import (
	"github.com/diffeo/go-mlrest/restclient"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"
	"io"
	"io/ioutil"
	"os"
)

// config holds the global settings.
type config struct {
	restclient.Options `mapstructure:",squash"`

	// Database names the database every command uses; empty is
	// the server's default.
	Database string `mapstructure:"database"`

	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log_level"`
}

// session holds the state shared by every command.
type session struct {
	Config config
	Out    io.Writer

	client *restclient.Client
}

var sess = session{Out: os.Stdout}

func loadConfigYaml(filename string) (map[string]interface{}, error) {
	var result map[string]interface{}
	var err error
	var bytes []byte
	bytes, err = ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}

// decode is a helper that uses the mapstructure library to decode a
// string-keyed map into a structure.
func decode(result interface{}, options map[string]interface{}) error {
	config := mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
	}
	decoder, err := mapstructure.NewDecoder(&config)
	if err == nil {
		err = decoder.Decode(options)
	}
	return err
}

// loadConfig builds the global settings from the config file named
// by --config, if any, and the other global flags.
func loadConfig(c *cli.Context) (config, error) {
	var cfg config
	if filename := c.GlobalString("config"); filename != "" {
		options, err := loadConfigYaml(filename)
		if err != nil {
			return cfg, err
		}
		if err = decode(&cfg, options); err != nil {
			return cfg, err
		}
	}
	if c.GlobalIsSet("base-uri") || cfg.BaseURI == "" {
		cfg.BaseURI = c.GlobalString("base-uri")
	}
	if c.GlobalIsSet("database") {
		cfg.Database = c.GlobalString("database")
	}
	if c.GlobalIsSet("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = c.GlobalString("log-level")
	}
	return cfg, nil
}

// Client returns the client every command uses, creating it on first
// use.
func (s *session) Client() (*restclient.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	client, err := restclient.New(s.Config.Options)
	if err != nil {
		return nil, err
	}
	if s.Config.Database != "" {
		client, err = client.Database(s.Config.Database)
		if err != nil {
			return nil, err
		}
	}
	s.client = client
	return client, nil
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mlrest"
	app.Usage = "talk to a document-and-search REST API server"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "global configuration YAML file",
		},
		cli.StringFlag{
			Name:   "base-uri",
			Usage:  "absolute URI of the REST API server",
			EnvVar: restclient.BaseURIEnv,
		},
		cli.StringFlag{
			Name:  "database",
			Usage: "use this database instead of the default",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "logging level (debug logs every request)",
		},
	}
	app.Commands = []cli.Command{
		getDocs,
		putDoc,
		removeDocs,
		search,
		graphs,
		options,
		txPut,
		bench,
	}
	app.Before = func(c *cli.Context) (err error) {
		sess.Config, err = loadConfig(c)
		if err != nil {
			return
		}
		level, err := logrus.ParseLevel(sess.Config.LogLevel)
		if err != nil {
			return
		}
		logrus.SetLevel(level)
		return
	}
	return app
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("mlrest failed")
	}
}
