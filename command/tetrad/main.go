// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Excalibur EXS Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/excalibur-exs/tetrad/difficulty"
	"github.com/excalibur-exs/tetrad/fault"
	"github.com/excalibur-exs/tetrad/miner"
	"github.com/excalibur-exs/tetrad/scheduler"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// exit statuses for scripting
const (
	exitMissed = 1 // search exhausted or deadline passed without a winner
	exitConfig = 2 // bad flags or configuration file
)

// result record printed to stdout as JSON
type outputRecord struct {
	Outcome        string  `json:"outcome"`
	Found          bool    `json:"found"`
	Nonce          uint64  `json:"nonce"`
	Digest         string  `json:"digest_hex"`
	Attempts       uint64  `json:"attempts"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	HashRate       float64 `json:"hashrate"`
	Lanes          uint32  `json:"lanes"`
}

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "target", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 't'},
		{Long: "difficulty", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "rounds", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'r'},
		{Long: "lanes", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'l'},
		{Long: "batch-size", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'b'},
		{Long: "duration", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'D'},
		{Long: "order", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'o'},
		{Long: "lowest", HasArg: getoptions.NO_ARGUMENT, Short: 'L'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || len(arguments) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] [--config-file=FILE] [--target=WORDS] [--difficulty=N|0xHEX] [--rounds=N] [--lanes=N] [--batch-size=N] [--duration=TIME] [--order=sequential|scored] [--lowest]", program)
	}

	if len(options["config-file"]) > 1 {
		configError(program, "at most one config-file option is allowed, %d were detected", len(options["config-file"]))
	}

	// read the optional configuration file; flags override it below
	var conf *Configuration
	if 1 == len(options["config-file"]) {
		conf, err = getConfiguration(options["config-file"][0])
		if nil != err {
			configError(program, "failed to read configuration from: %q  error: %s", options["config-file"][0], err)
		}
	} else {
		conf = defaultConfiguration()
		conf.Logging.Directory = ensureAbsolute(".", conf.Logging.Directory)
		if err := os.MkdirAll(conf.Logging.Directory, 0700); nil != err {
			configError(program, "cannot create log directory: %q  error: %s", conf.Logging.Directory, err)
		}
	}

	if err := mergeFlags(&conf.Miner, options); nil != err {
		configError(program, "invalid option: %s", err)
	}

	// start logging
	if err = logger.Initialise(conf.Logging); nil != err {
		configError(program, "logger setup failed with error: %s", err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("configuration: %v", conf)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != conf.PidFile {
		lockFile, err := os.OpenFile(conf.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, conf.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(conf.PidFile)
	}

	job, maxDuration, lanes, err := buildJob(&conf.Miner)
	if nil != err {
		configError(program, "invalid job: %s", err)
	}

	quiet := len(options["quiet"]) > 0
	if !quiet {
		fmt.Printf("target: %q  difficulty: %s  rounds: %d  lanes: %d\n",
			job.Target, job.Difficulty, job.Rounds, lanes)
	}

	coordinator, err := miner.New(lanes, logger.New("coordinator"))
	if nil != err {
		configError(program, "coordinator setup failed: %s", err)
	}

	// periodic hash rate display while mining
	stopTicker := make(chan struct{})
	if len(options["verbose"]) > 0 {
		go func() {
			ticker := time.NewTicker(5 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					fmt.Printf("rate: %.1f H/s  attempts: %d\n",
						coordinator.HashRate(), coordinator.Attempts())
				case <-stopTicker:
					return
				}
			}
		}()
	}

	result, err := coordinator.Mine(job, maxDuration)
	close(stopTicker)
	if nil != err {
		log.Criticalf("mining failed: %s", err)
		exitwithstatus.Message("%s: mining failed: %s", program, err)
	}

	record := outputRecord{
		Outcome:        result.Outcome.String(),
		Found:          result.Found,
		Nonce:          result.Nonce,
		Digest:         result.Digest.String(),
		Attempts:       result.Attempts,
		ElapsedSeconds: result.Elapsed.Seconds(),
		HashRate:       result.HashRate,
		Lanes:          lanes,
	}
	text, err := json.MarshalIndent(record, "", "  ")
	if nil != err {
		exitwithstatus.Message("%s: result encoding failed: %s", program, err)
	}
	fmt.Printf("%s\n", text)

	if !result.Found {
		exitwithstatus.Exit(exitMissed)
	}
}

// configError - report a configuration problem and exit
func configError(program string, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", program, fmt.Sprintf(format, args...))
	exitwithstatus.Exit(exitConfig)
}

// mergeFlags - command line options override configuration file values
//
// a numeric flag that does not parse is a configuration error, never
// a silent fallback to the default
func mergeFlags(args *MinerArguments, options map[string][]string) error {
	if s := lastOption(options, "target"); "" != s {
		args.Target = s
	}
	if s := lastOption(options, "difficulty"); "" != s {
		args.Difficulty = s
	}

	var err error
	if s := lastOption(options, "rounds"); "" != s {
		args.Rounds, err = strconv.Atoi(s)
		if nil != err {
			return fmt.Errorf("rounds: %q is not a number", s)
		}
	}
	if s := lastOption(options, "lanes"); "" != s {
		args.Lanes, err = strconv.Atoi(s)
		if nil != err {
			return fmt.Errorf("lanes: %q is not a number", s)
		}
	}
	if s := lastOption(options, "batch-size"); "" != s {
		args.BatchSize, err = strconv.Atoi(s)
		if nil != err {
			return fmt.Errorf("batch-size: %q is not a number", s)
		}
	}
	if s := lastOption(options, "duration"); "" != s {
		args.Duration = s
	}
	if s := lastOption(options, "order"); "" != s {
		args.Order = s
	}
	if len(options["lowest"]) > 0 {
		args.Lowest = true
	}
	return nil
}

func lastOption(options map[string][]string, name string) string {
	values := options[name]
	if 0 == len(values) {
		return ""
	}
	return values[len(values)-1]
}

// buildJob - turn merged arguments into a verified mining job
func buildJob(args *MinerArguments) (*miner.Job, time.Duration, uint32, error) {

	if "" == args.Target {
		return nil, 0, 0, fmt.Errorf("target is required")
	}

	difficultyText := args.Difficulty
	if "" == difficultyText {
		difficultyText = "1"
	}
	d, err := difficulty.Parse(difficultyText)
	if nil != err {
		return nil, 0, 0, err
	}

	job := miner.NewJob([]byte(args.Target), d)

	if args.Rounds > 0 {
		job.Rounds = args.Rounds
	}
	if args.BatchSize > 0 {
		job.BatchSize = args.BatchSize
	}
	if args.HardeningIterations > 0 {
		job.HardeningIterations = args.HardeningIterations
	}
	if args.PartitionSpan < 0 {
		return nil, 0, 0, fault.InvalidPartitionSpan
	} else if args.PartitionSpan > 0 {
		job.PartitionSpan = uint64(args.PartitionSpan)
	}
	if args.NonceLimit < 0 {
		return nil, 0, 0, fault.InvalidNonceLimit
	} else if args.NonceLimit > 0 {
		job.NonceLimit = uint64(args.NonceLimit)
	}
	if "" != args.Order {
		order, err := scheduler.ParseOrder(args.Order)
		if nil != err {
			return nil, 0, 0, err
		}
		job.Order = order
	}
	job.SearchLowest = args.Lowest

	maxDuration := time.Duration(0)
	if "" != args.Duration {
		maxDuration, err = time.ParseDuration(args.Duration)
		if nil != err {
			return nil, 0, 0, err
		}
	}

	lanes := args.Lanes
	if lanes <= 0 {
		lanes = runtime.NumCPU()
	}

	if err := job.Verify(); nil != err {
		return nil, 0, 0, err
	}

	return job, maxDuration, uint32(lanes), nil
}
