// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// configuration file change notification
//
// the directory is watched so that editors replacing the file by
// rename are also seen
type watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	done     chan struct{}
}

func newWatcher(log *logger.L, fileName string) (*watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	return &watcher{
		log:      log,
		watcher:  w,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Changes - signalled once per burst of writes
func (w *watcher) Changes() <-chan struct{} {
	return w.change
}

func (w *watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.filePath)); nil != err {
		return err
	}

	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(w.filePath) {
					continue
				}
				w.log.Debugf("file event: %v", event)
				if isChange(event) {
					w.send()
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warnf("watch error: %s", err)
			}
		}
	}()
	return nil
}

func (w *watcher) Stop() {
	if err := w.watcher.Close(); nil != err {
		w.log.Warnf("close error: %s", err)
	}
	<-w.done
}

// drop the event if one is already pending
func (w *watcher) send() {
	select {
	case w.change <- struct{}{}:
	default:
		w.log.Debug("change already pending, discard event")
	}
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
