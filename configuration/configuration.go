// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/shiftnrg/shiftd/chain"
	"github.com/shiftnrg/shiftd/milestone"
	"github.com/shiftnrg/shiftd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultPeerFile         = "peers.json"
	defaultReservoirFile    = "reservoir.cache"

	defaultLogDirectory = "log"
	defaultLogFile      = "shiftd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultTimeout   = 10  // seconds
	defaultRateLimit = 2.0 // requests per second to storage peers
	defaultListen    = "127.0.0.1:9305"
)

func defaultLogLevels() map[string]string {
	return map[string]string{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
}

// DatabaseType - location of the LevelDB state store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// StorageType - storage oracle settings
//
// zero values of the tuning fields select the chain defaults
type StorageType struct {
	Peers               []string `gluamapper:"peers" json:"peers"`
	PeersDomain         string   `gluamapper:"peers_domain" json:"peers_domain"`
	Timeout             int      `gluamapper:"timeout" json:"timeout"`
	RateLimit           float64  `gluamapper:"rate_limit" json:"rate_limit"`
	BlockStatsInterval  uint64   `gluamapper:"block_stats_interval" json:"block_stats_interval"`
	MaxRemovalMarks     uint64   `gluamapper:"max_removal_marks" json:"max_removal_marks"`
	LookupPerIterations uint64   `gluamapper:"lookup_per_iterations" json:"lookup_per_iterations"`
}

// LockType - one lock settings milestone
type LockType struct {
	Height      uint64 `gluamapper:"height" json:"height"`
	Replication uint64 `gluamapper:"replication" json:"replication"`
	RatioFactor uint64 `gluamapper:"ratio_factor" json:"ratio_factor"`
	Buffer      uint64 `gluamapper:"buffer" json:"buffer"`
}

// APIType - the query server
type APIType struct {
	Listen  string `gluamapper:"listen" json:"listen"`
	Metrics bool   `gluamapper:"metrics" json:"metrics"`
}

// Configuration - everything read from the configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Chain         string       `gluamapper:"chain" json:"chain"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	PeerFile      string `gluamapper:"peer_file" json:"peer_file"`
	ReservoirFile string `gluamapper:"reservoir_file" json:"reservoir_file"`

	Storage StorageType          `gluamapper:"storage" json:"storage"`
	Locks   []LockType           `gluamapper:"locks" json:"locks"`
	API     APIType              `gluamapper:"api" json:"api"`
	Logging logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Get - read, default and verify a configuration file
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		Chain:         chain.Shift,
		PeerFile:      defaultPeerFile,
		ReservoirFile: defaultReservoirFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
		},

		Storage: StorageType{
			Timeout:   defaultTimeout,
			RateLimit: defaultRateLimit,
		},

		API: APIType{
			Listen: defaultListen,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	variables := map[string]string{
		"config_directory": dataDirectory,
	}
	if err := ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}
	if "" == options.Database.Name {
		options.Database.Name = options.Chain + ".leveldb"
	}
	if options.Storage.Timeout <= 0 {
		return nil, fmt.Errorf("storage timeout: %d is not positive", options.Storage.Timeout)
	}
	if options.Storage.RateLimit <= 0 {
		return nil, fmt.Errorf("storage rate limit: %g is not positive", options.Storage.RateLimit)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.PeerFile,
		&options.ReservoirFile,
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// plain file names only, then prefixed by their directory
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// Parameters - the chain parameters with configured overrides applied
func (c *Configuration) Parameters() (*chain.Parameters, error) {
	p, err := chain.Get(c.Chain)
	if nil != err {
		return nil, err
	}

	if 0 != c.Storage.BlockStatsInterval {
		p.BlockStatsInterval = c.Storage.BlockStatsInterval
	}
	if 0 != c.Storage.MaxRemovalMarks {
		p.MaxRemovalMarks = c.Storage.MaxRemovalMarks
	}
	if 0 != c.Storage.LookupPerIterations {
		p.LookupPerIterations = c.Storage.LookupPerIterations
	}

	if len(c.Locks) > 0 {
		p.Locks = make([]milestone.Entry[milestone.LockSettings], len(c.Locks))
		for i, l := range c.Locks {
			p.Locks[i] = milestone.Entry[milestone.LockSettings]{
				Height: l.Height,
				Params: milestone.LockSettings{
					Replication: l.Replication,
					RatioFactor: l.RatioFactor,
					Buffer:      l.Buffer,
				},
			}
		}
		// reject a malformed table before anything is built on it
		if _, err := milestone.NewLockSchedule(p.Locks); nil != err {
			return nil, err
		}
	}
	return p, nil
}

// Timeout - storage peer request timeout
func (c *Configuration) Timeout() time.Duration {
	return time.Duration(c.Storage.Timeout) * time.Second
}
