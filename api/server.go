// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/metrics"
	"github.com/shiftnrg/shiftd/pin"
	"github.com/shiftnrg/shiftd/transaction"
)

const shutdownTimeout = 5 * time.Second

// Ledger - confirmed storage fields
type Ledger interface {
	Confirmed() ledger.Projection
	Totals() ledger.Fields
}

// Locks - the lock engine queries
type Locks interface {
	Fee(height uint64, t transaction.Type) (uint64, error)
	CalcLockBytes(height uint64, amount uint64, stats cluster.BlockStats) (uint64, error)
}

// Pins - the pin registry queries
type Pins interface {
	Fee(height uint64, t transaction.Type) (uint64, error)
	MostRecentPin(hash string, sender account.Address) (pin.Record, bool)
	PinsByParent(parent uint64) ([]*pin.Row, error)
}

// Stats - recorded block stats
type Stats interface {
	Last() (cluster.BlockStats, bool)
	At(timestamp uint64, lastHeight uint64) (cluster.BlockStats, error)
}

// Replication - the lock settings replication factor by height
type Replication interface {
	Replication(height uint64) (uint64, error)
}

// Options - sources of the query server
type Options struct {
	Ledger      Ledger
	Locks       Locks
	Pins        Pins
	Stats       Stats
	Replication Replication
	Metrics     bool // serve /metrics
}

// Server - the HTTP query server
type Server struct {
	log     *logger.L
	options Options
	router  chi.Router
	server  *http.Server
}

// New - create the server and its routes
func New(log *logger.L, options Options) *Server {
	s := &Server{
		log:     log,
		options: options,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Route("/api/locks", func(r chi.Router) {
		r.Get("/fee", s.lockFee)
		r.Get("/calcLock", s.calcLock)
		r.Get("/calcUnlock", s.calcUnlock)
		r.Get("/balance", s.lockedBalance)
		r.Get("/bytes", s.lockedBytes)
		r.Get("/totalBytes", s.totalLockedBytes)
		r.Get("/totalBalance", s.totalLockedBalance)
		r.Get("/stats", s.stats)
	})
	r.Route("/api/pins", func(r chi.Router) {
		r.Get("/fee", s.pinFee)
		r.Get("/bytes", s.pinnedBytes)
		r.Get("/totalBytes", s.totalPinnedBytes)
		r.Get("/verify", s.verifyPin)
		r.Get("/parent", s.pinsByParent)
	})
	if options.Metrics {
		r.Handle("/metrics", metrics.Handler())
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		sendError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		sendError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	s.router = r
	return s
}

// ServeHTTP - dispatch to the routes
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start - listen in the background
func (s *Server) Start(listen string) error {
	listener, err := net.Listen("tcp", listen)
	if nil != err {
		return err
	}
	s.server = &http.Server{
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	s.log.Infof("listening on: %s", listener.Addr())

	go func() {
		err := s.server.Serve(listener)
		if nil != err && http.ErrServerClosed != err {
			s.log.Errorf("serve error: %s", err)
		}
	}()
	return nil
}

// Stop - finish outstanding requests and close the listener
func (s *Server) Stop() {
	if nil == s.server {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); nil != err {
		s.log.Warnf("shutdown error: %s", err)
	}
	s.log.Info("stopped")
}

// count each request by its route pattern
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); nil != rc && "" != rc.RoutePattern() {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if 0 == status {
			status = http.StatusOK
		}
		metrics.RecordRequest(route, status)
		s.log.Debugf("%s %s  status: %d  time: %s", r.Method, r.URL, status, time.Since(start))
	})
}

// the genesis height until a block is recorded
func (s *Server) lastHeight() uint64 {
	last, ok := s.options.Stats.Last()
	if !ok {
		return 1
	}
	return last.Height
}
