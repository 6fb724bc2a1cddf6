// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/configuration"
)

// setup command handler
//
// commands that cannot access the configuration file or the
// database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)

	case "help", "h", "?":
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)

	default:
		return false
	}
	return true
}

// configuration command handler
//
// commands that only print values derived from the configuration
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	switch arguments[0] {
	case "config", "conf", "cfg":
		printJSON(options)

	case "chain-parameters", "params":
		p, err := options.Parameters()
		if nil != err {
			exitwithstatus.Message("parameters error: %s", err)
		}
		printJSON(p)

	default:
		return false
	}
	return true
}

// data command handler
//
// commands that read the database without starting any background
// process
func processDataCommand(log *logger.L, arguments []string, n *node) bool {

	command := arguments[0]
	arguments = arguments[1:]

	switch command {
	case "totals":
		printJSON(n.ledger.Totals())

	case "block-stats", "stats":
		if 0 == len(arguments) {
			last, ok := n.stats.Last()
			if !ok {
				exitwithstatus.Message("no block stats recorded")
			}
			printJSON(last)
			break
		}
		height, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("invalid height: %q", arguments[0])
		}
		stats, ok := n.stats.Get(height)
		if !ok {
			exitwithstatus.Message("no block stats at height: %d", height)
		}
		printJSON(stats)

	case "cluster-size", "size":
		size, err := n.oracle.ClusterSize(0)
		if nil != err {
			exitwithstatus.Message("cluster size error: %s", err)
		}
		printJSON(map[string]uint64{"clusterSize": size})

	default:
		return false
	}
	log.Infof("data command: %s", command)
	return true
}

func printJSON(message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		exitwithstatus.Message("json error: %s", err)
	}
	fmt.Fprintf(os.Stdout, "%s\n", b)
}
