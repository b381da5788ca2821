// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"
	"github.com/diffeo/go-mlrest/restclient"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// benchWork runs the same job from many goroutines at once.
type benchWork struct {
	Concurrency int
	Failures    int64
}

func (bench *benchWork) Run(runner func()) {
	wg := sync.WaitGroup{}
	wg.Add(bench.Concurrency)
	for i := 0; i < bench.Concurrency; i++ {
		go func() {
			defer wg.Done()
			runner()
		}()
	}
	wg.Wait()
}

// benchDocument writes one generated document in its own transaction.
func benchDocument(client *restclient.Client, prefix string, n int) error {
	tx, err := client.Transaction()
	if err != nil {
		return err
	}
	uri := prefix + uuid.NewV4().String() + ".json"
	resp, err := tx.Create(uri, map[string]interface{}{"n": n}, restclient.Params{"collection": "bench"})
	if err = check(uri, resp, err); err != nil {
		_, _ = tx.Rollback()
		return err
	}
	resp, err = tx.Commit()
	return check("commit", resp, err)
}

var bench = cli.Command{
	Name:  "bench",
	Usage: "create many documents concurrently, one transaction each",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "number of documents to create",
		},
		cli.IntFlag{
			Name:  "concurrency",
			Value: runtime.NumCPU(),
			Usage: "run this many writers in parallel",
		},
		cli.StringFlag{
			Name:  "prefix",
			Value: "/bench/",
			Usage: "URI prefix of generated documents",
		},
	},
	Action: func(c *cli.Context) error {
		client, err := sess.Client()
		if err != nil {
			return err
		}
		work := benchWork{Concurrency: c.Int("concurrency")}
		count := c.Int("count")
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()

		start := time.Now()
		work.Run(func() {
			for n := range numbers {
				err := benchDocument(client, c.String("prefix"), n)
				if err != nil {
					atomic.AddInt64(&work.Failures, 1)
					logrus.WithFields(logrus.Fields{
						"n":   n,
						"err": err,
					}).Warn("bench write failed")
				}
			}
		})
		elapsed := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"count":    count,
			"failures": work.Failures,
			"elapsed":  elapsed,
		}).Info("bench done")
		_, err = fmt.Fprintf(sess.Out, "%d documents, %d failures, %v\n",
			count, work.Failures, elapsed)
		return err
	},
}
