// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shiftnrg/shiftd/account"
	"github.com/shiftnrg/shiftd/fault"
)

// to compose JSON error messages
type eType struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Success: false,
		Error:   message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"success":false,"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}

// status by error class
func sendFault(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case fault.IsErrCapacity(err), fault.IsErrSamples(err):
		code = http.StatusConflict
	case fault.IsErrNotFound(err):
		code = http.StatusNotFound
	case fault.IsErrInvalid(err), fault.IsErrFunds(err), fault.IsErrPinState(err), fault.IsErrHeight(err):
		code = http.StatusBadRequest
	}
	sendError(w, err.Error(), code)
}

// a required unsigned decimal parameter
func uintParameter(r *http.Request, name string) (uint64, error) {
	s := r.URL.Query().Get(name)
	if "" == s {
		return 0, fault.MissingParameter
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, fault.InvalidParameter
	}
	return n, nil
}

// an optional unsigned decimal parameter
func optionalUintParameter(r *http.Request, name string, defaultValue uint64) (uint64, error) {
	if "" == r.URL.Query().Get(name) {
		return defaultValue, nil
	}
	return uintParameter(r, name)
}

func addressParameter(r *http.Request) (account.Address, error) {
	s := r.URL.Query().Get("address")
	if "" == s {
		return "", fault.MissingParameter
	}
	return account.Parse(s)
}
