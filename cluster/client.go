// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/util"
)

// Stats - a peer's view of the cluster capacity, GET /stats
type Stats struct {
	TotalStorage uint64 `json:"TotalStorage"`
	UsedStorage  uint64 `json:"UsedStorage"`
}

// PeerStatus - one entry of a peer's directory, GET /peers
type PeerStatus struct {
	Host   string `json:"Host"`
	Port   uint16 `json:"Port"`
	Online bool   `json:"Online"`
}

// Client - the polling side of the peer protocol
type Client interface {
	Stats(ctx context.Context, peer Peer) (Stats, error)
	Peers(ctx context.Context, peer Peer) ([]PeerStatus, error)
}

// limiter burst: a lookup cycle makes two requests
const requestBurst = 2

type httpClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPClient - a client with a per-request timeout and an overall
// request rate limit
func NewHTTPClient(timeout time.Duration, requestsPerSecond float64) Client {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &httpClient{
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, requestBurst),
	}
}

func (c *httpClient) Stats(ctx context.Context, peer Peer) (Stats, error) {
	var stats Stats
	err := c.get(ctx, peer, "/stats", &stats)
	return stats, err
}

func (c *httpClient) Peers(ctx context.Context, peer Peer) ([]PeerStatus, error) {
	var peers []PeerStatus
	err := c.get(ctx, peer, "/peers", &peers)
	return peers, err
}

func (c *httpClient) get(ctx context.Context, peer Peer, path string, reply interface{}) error {
	if err := c.limiter.Wait(ctx); nil != err {
		return fmt.Errorf("%w: %s", fault.PeerUnreachable, err)
	}

	u, err := peerURL(peer)
	if nil != err {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u+path, nil)
	if nil != err {
		return err
	}

	response, err := c.client.Do(request)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.PeerUnreachable, err)
	}
	defer response.Body.Close()

	if http.StatusOK != response.StatusCode {
		return fmt.Errorf("%w: status: %d  GET %s", fault.BadPeerResponse, response.StatusCode, u+path)
	}

	err = json.NewDecoder(response.Body).Decode(reply)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.BadPeerResponse, err)
	}
	return nil
}

// port 80 is left implicit
func peerURL(peer Peer) (string, error) {
	port := peer.Port
	if 0 == port {
		port = 80
	}
	hostPort, err := util.CanonicalHostPort(peer.Host, port)
	if nil != err {
		return "", err
	}
	return "http://" + strings.TrimSuffix(hostPort, ":80"), nil
}
