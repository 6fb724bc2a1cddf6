// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/miekg/dns"

	"github.com/shiftnrg/shiftd/util"
)

const resolvConf = "/etc/resolv.conf"

// ParseBootstrap - convert configured multiaddrs into peers
//
// invalid entries are skipped and reported
func ParseBootstrap(log *logger.L, addresses []string) []Peer {
	peers := make([]Peer, 0, len(addresses))
	for i, s := range addresses {
		host, port, err := util.HostPortFromMultiaddr(s)
		if nil != err {
			log.Warnf("bootstrap[%d]: %q error: %s", i, s, err)
			continue
		}
		peers = append(peers, Peer{Host: host, Port: port})
	}
	return peers
}

// Lookuper - resolve the storage peers advertised under a domain
type Lookuper interface {
	Lookup(domain string) ([]Peer, error)
}

// srvLookuper - queries "_storage._tcp.<domain>" SRV records against
// the system name servers
type srvLookuper struct {
	log    *logger.L
	config string
}

// NewLookuper - SRV lookup using /etc/resolv.conf
func NewLookuper(log *logger.L) Lookuper {
	return &srvLookuper{
		log:    log,
		config: resolvConf,
	}
}

func (l *srvLookuper) Lookup(domain string) ([]Peer, error) {
	conf, err := dns.ClientConfigFromFile(l.config)
	if nil != err {
		return nil, err
	}

	// limit the nameservers to lookup
	servers := conf.Servers
	if len(servers) > 3 {
		servers = servers[:3]
	}

	name := dns.Fqdn("_storage._tcp." + strings.TrimSuffix(domain, "."))
	var lastErr error

loop:
	for _, server := range servers {
		s := net.JoinHostPort(server, conf.Port)
		c := dns.Client{}
		msg := dns.Msg{}
		msg.SetQuestion(name, dns.TypeSRV)

		r, _, err := c.Exchange(&msg, s)
		if nil != err {
			l.log.Debugf("exchange with dns server %q error: %s", s, err)
			lastErr = err
			continue loop
		}
		return srvPeers(r.Answer), nil
	}
	return nil, lastErr
}

func srvPeers(answer []dns.RR) []Peer {
	peers := make([]Peer, 0, len(answer))
	for _, rr := range answer {
		srv, ok := rr.(*dns.SRV)
		if !ok || 0 == srv.Port {
			continue
		}
		peers = append(peers, Peer{
			Host: strings.TrimSuffix(srv.Target, "."),
			Port: srv.Port,
		})
	}
	return peers
}
