// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maximum reply accepted from the node
const maximumReplySize = 1 << 20

type client struct {
	base   string
	client *http.Client
}

func newClient(connect string, timeout time.Duration) *client {
	base := connect
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &client{
		base: strings.TrimSuffix(base, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GET a query and decode its JSON reply
//
// a reply with success false is returned as an error carrying the
// node's message
func (c *client) get(path string, parameters url.Values, reply interface{}) error {
	u := c.base + path
	if len(parameters) > 0 {
		u += "?" + parameters.Encode()
	}

	response, err := c.client.Get(u)
	if nil != err {
		return err
	}
	defer response.Body.Close()

	var raw json.RawMessage
	err = json.NewDecoder(io.LimitReader(response.Body, maximumReplySize)).Decode(&raw)
	if nil != err {
		return fmt.Errorf("status: %d  invalid reply: %s", response.StatusCode, err)
	}

	var status struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &status); nil != err {
		return err
	}
	if !status.Success {
		return fmt.Errorf("status: %d  error: %s", response.StatusCode, status.Error)
	}
	return json.Unmarshal(raw, reply)
}
