// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/excalibur-exs/tetrad/configuration"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the config file

	defaultLogDirectory = "log"
	defaultLogFile      = "tetrad.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "error",
}

// MinerArguments - job parameters from the configuration file; any of
// these can be overridden on the command line
type MinerArguments struct {
	Target              string `gluamapper:"target" json:"target"`
	Difficulty          string `gluamapper:"difficulty" json:"difficulty"`
	Rounds              int    `gluamapper:"rounds" json:"rounds"`
	Lanes               int    `gluamapper:"lanes" json:"lanes"`
	BatchSize           int    `gluamapper:"batch_size" json:"batch_size"`
	HardeningIterations int    `gluamapper:"hardening_iterations" json:"hardening_iterations"`
	Order               string `gluamapper:"order" json:"order"`
	PartitionSpan       int64  `gluamapper:"partition_span" json:"partition_span"`
	NonceLimit          int64  `gluamapper:"nonce_limit" json:"nonce_limit"`
	Duration            string `gluamapper:"duration" json:"duration"`
	Lowest              bool   `gluamapper:"lowest" json:"lowest"`
}

type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Miner         MinerArguments       `gluamapper:"miner" json:"miner"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// all defaults in place; used directly when no configuration file is
// supplied
func defaultConfiguration() *Configuration {
	return &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Miner:         MinerArguments{},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := defaultConfiguration()

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// log file must be a plain name, the directory prefix comes from
	// the logging directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// make absolute and create the log directory if it does not
	// already exist
	options.Logging.Directory = ensureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// ensureAbsolute - prepend a directory to a file path if it is not
// already absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
