// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// logger channel for last gasp messages
var log *logger.L

// InvalidLoggerChannel - logger.New returned nothing
var InvalidLoggerChannel = ProcessError("invalid logger channel")

// Initialise - setup the "PANIC" log channel
//
// must be called after logger.Initialise
func Initialise() error {
	if nil != log {
		return AlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return InvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any pending log data
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Criticalf - log a formatted message prefixed by the caller's position
func Criticalf(format string, arguments ...interface{}) {
	criticalf(2, format, arguments...)
}

// Panicf - log a formatted message then panic
//
// reserved for defects such as corrupt stored records, never for
// rejected transactions
func Panicf(format string, arguments ...interface{}) {
	criticalf(2, format, arguments...)
	time.Sleep(100 * time.Millisecond) // let the log writer drain
	panic(fmt.Sprintf(format, arguments...))
}

// PanicIfError - conditional panic
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	criticalf(2, "%s failed with error: %s", message, err)
	time.Sleep(100 * time.Millisecond)
	panic(fmt.Sprintf("%s failed with error: %s", message, err))
}

func criticalf(skip int, format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(skip); ok {
		a := make([]interface{}, 2, 2+len(arguments))
		a[0] = file
		a[1] = line
		arguments = append(a, arguments...)
		format = "(%q:%d) " + format
	}
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush()
}
