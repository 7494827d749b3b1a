// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tinybank/tinybank/api"
	"github.com/tinybank/tinybank/api/admin/health"
	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/cmd/tinybank/httpserver"
	"github.com/tinybank/tinybank/log"
	"github.com/tinybank/tinybank/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "TinyBank",
		Usage:   "Staking vault node for the MyToken ledger",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			blockIntervalFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: soloAction,
		Commands: []cli.Command{
			{
				Name:  "demo",
				Usage: "run the reference staking scenario against an in-memory chain",
				Flags: []cli.Flag{
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: demoAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func soloAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	db, instanceDir, err := openDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing database..."); db.Close() }()

	c, err := chain.New(db, gene)
	if err != nil {
		return errors.Wrap(err, "init chain")
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	apiURL, srvCloser, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		c,
		api.Options{
			AllowedOrigins:       ctx.String(apiCorsFlag.Name),
			EnableReqLogger:      apiLogs,
			SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
			Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
			EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		},
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		logger.Info("metrics server started", "url", url)
	}

	clock := clockwork.NewRealClock()
	interval := time.Duration(ctx.Uint64(blockIntervalFlag.Name)) * time.Second
	h := health.New(c, clock, interval)

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, h)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		logger.Info("admin server started", "url", url)
	}

	printStartupMessage(gene, c, instanceDir, apiURL)

	var g errgroup.Group
	g.Go(func() error {
		h.Run(exitSignal)
		return nil
	})
	if interval > 0 {
		g.Go(func() error {
			c.Run(exitSignal, clock, interval)
			return nil
		})
	}
	<-exitSignal.Done()
	return g.Wait()
}
