// Copyright (c) 2025 The TinyBank developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tinybank/tinybank/chain"
	"github.com/tinybank/tinybank/genesis"
	"github.com/tinybank/tinybank/kv"
	"github.com/tinybank/tinybank/log"
	"github.com/tinybank/tinybank/lvldb"
	"github.com/tinybank/tinybank/thor"
)

type closableStore interface {
	kv.Store
	Close() error
}

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	return setupLogger(ctx, os.Stdout)
}

func setupLogger(ctx *cli.Context, out io.Writer) (*slog.LevelVar, error) {
	logLevel := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	var level slog.LevelVar
	level.Set(logLevel)

	format := "terminal"
	if ctx.Bool(jsonLogsFlag.Name) {
		format = "json"
	}

	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
	}

	handler, err := log.NewHandler(out, format, &level, useColor)
	if err != nil {
		return nil, err
	}
	log.SetDefault(log.NewLogger(handler))
	return &level, nil
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	config, err := genesis.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	return genesis.New(config, name[:len(name)-len(filepath.Ext(name))])
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".tinybank")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// instanceDir is the directory holding the chain of the given genesis.
func instanceDir(dataDir string, gene *genesis.Genesis) string {
	return filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
}

func openDB(ctx *cli.Context, gene *genesis.Genesis) (closableStore, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		if err != nil {
			return nil, "", errors.Wrap(err, "open memory database")
		}
		return db, "Memory", nil
	}

	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", errors.New("unable to infer default data dir, use -data-dir to specify")
	}
	dir := instanceDir(dataDir, gene)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", errors.Wrapf(err, "create data dir [%v]", dir)
	}
	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open database [%v]", dir)
	}
	return db, dir, nil
}

// handleExitSignal returns a context canceled on SIGINT or SIGTERM.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Genesis, c *chain.Chain, dataDir string, apiURL string) {
	tableHead := `
┌────────────────────────────────────────────┬────────────────────────────────────────────────────────────────────┐
│                   Address                  │                             Private Key                            │`
	tableContent := `
├────────────────────────────────────────────┼────────────────────────────────────────────────────────────────────┤
│ %v │ %v │`
	tableEnd := `
└────────────────────────────────────────────┴────────────────────────────────────────────────────────────────────┘`

	info := fmt.Sprintf(`Starting TinyBank %v
    Network     [ %v %v ]
    Best block  [ #%v ]
    Data dir    [ %v ]
    API portal  [ %v ]`,
		fullVersion(),
		gene.ID(), gene.Name(),
		c.BestNumber(),
		dataDir,
		apiURL)

	if gene.Name() == "devnet" {
		info += tableHead
		for _, a := range genesis.DevAccounts() {
			info += fmt.Sprintf(tableContent,
				a.Address,
				thor.BytesToBytes32(crypto.FromECDSA(a.PrivateKey)),
			)
		}
		info += tableEnd
	}
	info += "\r\n"

	fmt.Print(info)
}
