// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/urfave/cli"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/cid"
)

// errors
var (
	errRequiredAmount  = fmt.Errorf("amount is required")
	errRequiredHash    = fmt.Errorf("hash is required")
	errRequiredId      = fmt.Errorf("id is required")
	errRequiredAddress = fmt.Errorf("address is required")
)

func printJson(handle io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// query a path and print the reply
func query(c *cli.Context, path string, parameters url.Values) error {
	m := c.App.Metadata["config"].(*metadata)
	if m.verbose {
		fmt.Fprintf(m.e, "GET %s %v\n", path, parameters)
	}
	reply := map[string]interface{}{}
	if err := m.client.get(path, parameters, &reply); nil != err {
		return err
	}
	delete(reply, "success")
	return printJson(m.w, reply)
}

func checkAddress(c *cli.Context) (account.Address, error) {
	s := c.String("address")
	if "" == s {
		return "", errRequiredAddress
	}
	return account.Parse(s)
}

func checkAmount(c *cli.Context) (string, error) {
	amount := c.Uint64("amount")
	if 0 == amount {
		return "", errRequiredAmount
	}
	return strconv.FormatUint(amount, 10), nil
}

func heightParameter(c *cli.Context) url.Values {
	v := url.Values{}
	if height := c.Uint64("height"); 0 != height {
		v.Set("height", strconv.FormatUint(height, 10))
	}
	return v
}

func runLockFee(c *cli.Context) error {
	return query(c, "/api/locks/fee", heightParameter(c))
}

func runPinFee(c *cli.Context) error {
	return query(c, "/api/pins/fee", heightParameter(c))
}

func runCalcLock(c *cli.Context) error {
	amount, err := checkAmount(c)
	if nil != err {
		return err
	}
	return query(c, "/api/locks/calcLock", url.Values{"amount": {amount}})
}

func runCalcUnlock(c *cli.Context) error {
	address, err := checkAddress(c)
	if nil != err {
		return err
	}
	amount, err := checkAmount(c)
	if nil != err {
		return err
	}
	return query(c, "/api/locks/calcUnlock", url.Values{
		"address": {address.String()},
		"amount":  {amount},
	})
}

// combine the per account queries
func runBalance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	address, err := checkAddress(c)
	if nil != err {
		return err
	}
	parameters := url.Values{"address": {address.String()}}

	var balance struct {
		Balance uint64 `json:"balance"`
	}
	var locked, pinned struct {
		Bytes uint64 `json:"bytes"`
	}
	if err := m.client.get("/api/locks/balance", parameters, &balance); nil != err {
		return err
	}
	if err := m.client.get("/api/locks/bytes", parameters, &locked); nil != err {
		return err
	}
	if err := m.client.get("/api/pins/bytes", parameters, &pinned); nil != err {
		return err
	}

	return printJson(m.w, struct {
		Address       account.Address `json:"address"`
		LockedBalance uint64          `json:"lockedBalance"`
		LockedBytes   uint64          `json:"lockedBytes"`
		PinnedBytes   uint64          `json:"pinnedBytes"`
	}{address, balance.Balance, locked.Bytes, pinned.Bytes})
}

func runTotals(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	var balance struct {
		Balance uint64 `json:"balance"`
	}
	var locked, pinned struct {
		Bytes uint64 `json:"bytes"`
	}
	if err := m.client.get("/api/locks/totalBalance", nil, &balance); nil != err {
		return err
	}
	if err := m.client.get("/api/locks/totalBytes", nil, &locked); nil != err {
		return err
	}
	if err := m.client.get("/api/pins/totalBytes", nil, &pinned); nil != err {
		return err
	}

	return printJson(m.w, struct {
		LockedBalance uint64 `json:"lockedBalance"`
		LockedBytes   uint64 `json:"lockedBytes"`
		PinnedBytes   uint64 `json:"pinnedBytes"`
	}{balance.Balance, locked.Bytes, pinned.Bytes})
}

func runStats(c *cli.Context) error {
	v := url.Values{}
	if timestamp := c.Uint64("timestamp"); 0 != timestamp {
		v.Set("timestamp", strconv.FormatUint(timestamp, 10))
	}
	return query(c, "/api/locks/stats", v)
}

func runVerify(c *cli.Context) error {
	hash := c.String("hash")
	if "" == hash {
		return errRequiredHash
	}
	address, err := checkAddress(c)
	if nil != err {
		return err
	}
	return query(c, "/api/pins/verify", url.Values{
		"hash":    {hash},
		"address": {address.String()},
	})
}

func runChildren(c *cli.Context) error {
	id := c.Uint64("id")
	if 0 == id {
		return errRequiredId
	}
	return query(c, "/api/pins/parent", url.Values{"id": {strconv.FormatUint(id, 10)}})
}

func runCid(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if 1 != c.NArg() {
		return errRequiredHash
	}
	v0, err := cid.Canonical(c.Args().Get(0))
	if nil != err {
		return err
	}
	v1, err := cid.External(v0)
	if nil != err {
		return err
	}
	return printJson(m.w, struct {
		V0 string `json:"v0"`
		V1 string `json:"v1"`
	}{v0, v1})
}
