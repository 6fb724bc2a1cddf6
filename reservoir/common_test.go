// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/chain"
	"github.com/shiftnrg/shiftd/cluster"
	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/lock"
	"github.com/shiftnrg/shiftd/milestone"
	"github.com/shiftnrg/shiftd/mocks"
	"github.com/shiftnrg/shiftd/pin"
	"github.com/shiftnrg/shiftd/reservoir"
	"github.com/shiftnrg/shiftd/storage"
	"github.com/shiftnrg/shiftd/transaction"
)

// test files
const (
	testingDirName   = "testing"
	databaseFileName = "test.leveldb"
	cacheFileName    = "test.cache"
)

const (
	sender     = account.Address("1859190791819301S")
	emptyDirV0 = "QmUNLLsPACCz1vLxQVkXqqLX5R1X345qqfHbsf67hvA3Nn"
	readmeV0   = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

var publicKey = make([]byte, account.PublicKeyLength)

func TestMain(m *testing.M) {
	_ = os.Mkdir(testingDirName, 0700)
	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// fee charged by the fixture's schedule for every storage transaction
const fee = 10

func flatFees(t *testing.T) *milestone.FeeSchedule {
	fees, err := milestone.NewFeeSchedule([]milestone.Entry[milestone.Fees]{
		{Height: 1, Params: milestone.Fees{Lock: fee, Unlock: fee, Pin: fee, Unpin: fee}},
	})
	if nil != err {
		t.Fatalf("fee schedule error: %s", err)
	}
	return fees
}

type fixture struct {
	store     *storage.Store
	ledger    *ledger.Ledger
	index     *transaction.Index
	stats     *cluster.BlockStatsStore
	sizer     *mocks.MockSizer
	options   reservoir.Options
	reservoir *reservoir.Reservoir
}

// a store holding one recorded block at height 1, time 100, with a
// cluster of one million bytes and an account holding 1000
func setup(t *testing.T, ctl *gomock.Controller, expiry time.Duration) *fixture {
	_ = os.RemoveAll(databaseFileName)
	_ = os.RemoveAll(cacheFileName)
	s, err := storage.Open(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}

	p, err := chain.Get(chain.Testing)
	if nil != err {
		t.Fatalf("chain error: %s", err)
	}
	locks, err := milestone.NewLockSchedule(p.Locks)
	if nil != err {
		t.Fatalf("lock schedule error: %s", err)
	}
	fees := flatFees(t)

	l := ledger.New(s)
	index := transaction.NewIndex(s)
	stats := cluster.NewBlockStatsStore(s, p.BlockSlotWindow)
	sizer := mocks.NewMockSizer(ctl)

	engine := lock.New(logger.New("lock"), lock.Options{
		Store:  s,
		Ledger: l,
		Locks:  locks,
		Fees:   fees,
		Stats:  stats,
	})
	registry := pin.New(logger.New("pin"), pin.Options{
		Store:   s,
		Ledger:  l,
		Locks:   locks,
		Fees:    fees,
		Parents: index,
	})

	stats.Record(cluster.BlockStats{Height: 1, Timestamp: 100, ClusterSize: 1000000})
	if err := l.PutAccount(&ledger.Account{Address: sender, Balance: 1000}); nil != err {
		t.Fatalf("put account error: %s", err)
	}

	options := reservoir.Options{
		Store:  s,
		Ledger: l,
		Index:  index,
		Handlers: map[transaction.Type]reservoir.Handler{
			transaction.Lock:   engine,
			transaction.Unlock: engine,
			transaction.Pin:    registry,
			transaction.Unpin:  registry,
		},
		Stats:     stats,
		Sizer:     sizer,
		Expiry:    expiry,
		CacheFile: cacheFileName,
	}
	return &fixture{
		store:     s,
		ledger:    l,
		index:     index,
		stats:     stats,
		sizer:     sizer,
		options:   options,
		reservoir: reservoir.New(logger.New("reservoir"), options),
	}
}

func (f *fixture) teardown() {
	f.store.Close()
	_ = os.RemoveAll(databaseFileName)
	_ = os.RemoveAll(cacheFileName)
}

func lockTx(t transaction.Type, timestamp uint32, amount uint64, bytes uint64) *transaction.Transaction {
	return &transaction.Transaction{
		Type:            t,
		Timestamp:       timestamp,
		SenderPublicKey: publicKey,
		SenderId:        sender,
		Amount:          amount,
		Fee:             fee,
		Asset:           &lock.Asset{Bytes: bytes},
	}
}

func pinTx(t transaction.Type, timestamp uint32, bytes uint64) *transaction.Transaction {
	return &transaction.Transaction{
		Type:            t,
		Timestamp:       timestamp,
		SenderPublicKey: publicKey,
		SenderId:        sender,
		Fee:             fee,
		Asset:           &pin.Asset{Hash: emptyDirV0, Bytes: bytes},
	}
}
