// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli"
)

type metadata struct {
	client  *client
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:9305"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "shift-cli"
	app.Usage = "query the storage locks and pins of a shiftd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " shiftd API `HOST:PORT`",
			EnvVar: "SHIFT_API",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: 10 * time.Second,
			Usage: " request `TIMEOUT`",
		},
	}

	addressFlag := cli.StringFlag{
		Name:  "address, a",
		Value: "",
		Usage: "*account `ADDRESS`",
	}
	amountFlag := cli.Uint64Flag{
		Name:  "amount, m",
		Usage: "*amount in base units `AMOUNT`",
	}
	heightFlag := cli.Uint64Flag{
		Name:  "height",
		Usage: " block `HEIGHT` [default: last block]",
	}

	app.Commands = []cli.Command{
		{
			Name:      "lockfee",
			Usage:     "lock and unlock fees",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{heightFlag},
			Action:    runLockFee,
		},
		{
			Name:      "calclock",
			Usage:     "bytes granted for locking an amount",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{amountFlag},
			Action:    runCalcLock,
		},
		{
			Name:      "calcunlock",
			Usage:     "bytes released by unlocking an amount",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{addressFlag, amountFlag},
			Action:    runCalcUnlock,
		},
		{
			Name:      "balance",
			Usage:     "locked balance and bytes of an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{addressFlag},
			Action:    runBalance,
		},
		{
			Name:   "totals",
			Usage:  "locked and pinned totals of all accounts",
			Action: runTotals,
		},
		{
			Name:      "stats",
			Usage:     "block stats referenced by a timestamp",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "timestamp, s",
					Usage: " transaction `TIMESTAMP` [default: last block]",
				},
			},
			Action: runStats,
		},
		{
			Name:      "pinfee",
			Usage:     "pin and unpin fees",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{heightFlag},
			Action:    runPinFee,
		},
		{
			Name:      "verify",
			Usage:     "whether an account currently pins a content id",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "hash, H",
					Value: "",
					Usage: "*content id `CID` in either encoding",
				},
				addressFlag,
			},
			Action: runVerify,
		},
		{
			Name:      "children",
			Usage:     "pins naming a transaction as their parent",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Usage: "*parent transaction `ID`",
				},
			},
			Action: runChildren,
		},
		{
			Name:      "cid",
			Usage:     "convert a content id between its two encodings (offline)",
			ArgsUsage: "CID",
			Action:    runCid,
		},
		{
			Name:  "version",
			Usage: "display version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		verbose := c.GlobalBool("verbose")
		connect := c.GlobalString("connect")
		if verbose {
			fmt.Fprintf(c.App.ErrWriter, "connect: %q\n", connect)
		}
		c.App.Metadata["config"] = &metadata{
			client:  newClient(connect, c.GlobalDuration("timeout")),
			verbose: verbose,
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}
