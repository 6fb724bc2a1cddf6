// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cluster_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/ledger"
	"github.com/shiftnrg/shiftd/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = "test.leveldb"
)

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

func setupStore(t *testing.T) *storage.Store {
	_ = os.RemoveAll(databaseFileName)
	s, err := storage.Open(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return s
}

func teardownStore(s *storage.Store) {
	s.Close()
	_ = os.RemoveAll(databaseFileName)
}

// fixed ledger aggregates
type fixedTotals ledger.Fields

func (f fixedTotals) Totals() ledger.Fields {
	return ledger.Fields(f)
}
