// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse the daemon's Lua configuration file
//
// the file is a Lua chunk returning a table, so most of base Lua is
// available such as os.getenv to extract environment supplied items
// and reading files to set key data.  Unset values take the defaults
// of the selected chain.
package configuration
