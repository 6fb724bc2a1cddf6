// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
)

const (
	testingDirName = "testing"
	watchedFile    = "shiftd.conf"
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

func waitChange(w *watcher) bool {
	select {
	case <-w.Changes():
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatcher(t *testing.T) {
	fileName := filepath.Join(testingDirName, watchedFile)
	assert.Nil(t, ioutil.WriteFile(fileName, []byte("return {}\n"), 0600), "create")

	w, err := newWatcher(logger.New("watcher"), fileName)
	if !assert.Nil(t, err, "new watcher") {
		return
	}
	assert.Nil(t, w.Start(), "start")
	defer w.Stop()

	// other files in the directory are ignored
	assert.Nil(t, ioutil.WriteFile(filepath.Join(testingDirName, "other"), []byte("x"), 0600), "other")
	select {
	case <-w.Changes():
		t.Error("change reported for another file")
	case <-time.After(200 * time.Millisecond):
	}

	assert.Nil(t, ioutil.WriteFile(fileName, []byte("return { chain = \"local\" }\n"), 0600), "write")
	assert.True(t, waitChange(w), "write not reported")

	// replace by rename as editors do
	replacement := filepath.Join(testingDirName, "replacement")
	assert.Nil(t, ioutil.WriteFile(replacement, []byte("return {}\n"), 0600), "replacement")
	assert.Nil(t, os.Rename(replacement, fileName), "rename")
	assert.True(t, waitChange(w), "rename not reported")
}
