// Command compact decodes, encodes and measures compact targets.
//
//	compact [-v level] [-log file] [command [flags] args...]
//
// Without a command it decodes 0x18abcdef.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"

	"github.com/hadv/compact"
	"github.com/hadv/compact/difficulty"
	"github.com/hadv/compact/u512"
)

const (
	exitFailure = 1
	exitUsage   = 2

	demoCompact = 0x18abcdef
)

var log = commonlog.GetLogger("compact")

func main() {
	// util.Exit closes the log file.
	util.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	run   func(args []string, stdout, stderr io.Writer) int
	usage string
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"decode":     {runDecode, "decode [-hex] [-u512] compact..."},
		"encode":     {runEncode, "encode integer..."},
		"work":       {runWork, "work compact..."},
		"difficulty": {runDifficulty, "difficulty [-params file.toml] [-fixed] compact..."},
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("compact", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		verbosity = fs.Int("v", 0, "Log verbosity: -4 none, 0 notice, 1 info, 2 debug.")
		logPath   = fs.String("log", "", "Log file, stderr if empty.")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: compact [-v level] [-log file] [command [flags] args...]")
		for _, name := range []string{"decode", "encode", "work", "difficulty"} {
			fmt.Fprintln(stderr, "       compact "+commands[name].usage)
		}
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	configureLog(*verbosity, *logPath)

	if fs.NArg() == 0 {
		log.Debugf("no command, decoding %s", compact.Compact(demoCompact))
		fmt.Fprintln(stdout, compact.Decode(demoCompact))
		return 0
	}
	cmd, found := commands[fs.Arg(0)]
	if !found {
		return failf(stderr, exitUsage, "unknown command: %s", fs.Arg(0))
	}
	return cmd.run(fs.Args()[1:], stdout, stderr)
}

// configureLog sets up an unbuffered simple backend,
// so that every message is written before run returns.
func configureLog(verbosity int, path string) {
	backend := simple.NewBackend()
	backend.Buffered = false
	if len(path) > 0 {
		backend.Configure(verbosity, &path)
	} else {
		backend.Configure(verbosity, nil)
	}
	commonlog.SetBackend(backend)
}

// failf prints the message and returns code as the exit status.
func failf(w io.Writer, code int, format string, args ...any) int {
	fmt.Fprintf(w, format+"\n", args...)
	return code
}

// parseCompacts parses all args, or reports the first bad one.
func parseCompacts(fs *flag.FlagSet, stderr io.Writer) ([]compact.Compact, bool) {
	if fs.NArg() == 0 {
		failf(stderr, exitUsage, "usage: compact %s", commands[fs.Name()].usage)
		return nil, false
	}
	result := make([]compact.Compact, 0, fs.NArg())
	for _, arg := range fs.Args() {
		c, err := compact.FromString(arg)
		if err != nil {
			failf(stderr, exitUsage, "%s: %v", arg, err)
			return nil, false
		}
		log.Debugf("%s: size %d, word 0x%06x, sign %t", c, c.Size(), c.Word(), c.SignBit())
		result = append(result, c)
	}
	return result, true
}

func runDecode(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		hex  = fs.Bool("hex", false, "Print magnitudes in hex.")
		wide = fs.Bool("u512", false, "Decode into 512 bits, reporting overflows.")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	values, ok := parseCompacts(fs, stderr)
	if !ok {
		return exitUsage
	}
	status := 0
	for _, c := range values {
		if !*wide {
			n := c.Big()
			if *hex {
				fmt.Fprintf(stdout, "%#x\n", n)
			} else {
				fmt.Fprintln(stdout, n)
			}
			continue
		}
		u, err := u512.Decode(c)
		if err != nil {
			log.Warningf("%s needs %d bits", c, c.BitLen())
			status = failf(stderr, exitFailure, "%s: %v", c, err)
			continue
		}
		if *hex {
			fmt.Fprintf(stdout, "%#x\n", u)
		} else {
			fmt.Fprintln(stdout, u)
		}
	}
	return status
}

func runEncode(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		return failf(stderr, exitUsage, "usage: compact %s", commands["encode"].usage)
	}
	for _, arg := range fs.Args() {
		n, ok := new(big.Int).SetString(arg, 0)
		if !ok {
			return failf(stderr, exitUsage, "%s: not an integer", arg)
		}
		c, err := compact.FromSignedBig(n)
		if err != nil {
			return failf(stderr, exitFailure, "%s: %v", arg, err)
		}
		if c.Signed().Cmp(n) != 0 {
			log.Infof("%s loses precision, encoded as %s", arg, c.Signed())
		}
		fmt.Fprintln(stdout, c)
	}
	return 0
}

func runWork(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("work", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	values, ok := parseCompacts(fs, stderr)
	if !ok {
		return exitUsage
	}
	for _, c := range values {
		fmt.Fprintln(stdout, difficulty.Work(c))
	}
	if len(values) > 1 {
		log.Infof("total work: %s", difficulty.TotalWork(values...))
	}
	return 0
}

func runDifficulty(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("difficulty", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		paramsPath = fs.String("params", "", "TOML file with chain params, mainnet if empty.")
		asFixed    = fs.Bool("fixed", false, "Print 7 decimal places fixed-point values.")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	params := difficulty.MainNet
	if len(*paramsPath) > 0 {
		var err error
		if params, err = difficulty.LoadParams(*paramsPath); err != nil {
			return failf(stderr, exitUsage, "%v", err)
		}
		log.Infof("loaded %s params from %s", params.Name, *paramsPath)
	}
	values, ok := parseCompacts(fs, stderr)
	if !ok {
		return exitUsage
	}
	status := 0
	for _, c := range values {
		d, err := params.Difficulty(c)
		if err != nil {
			status = failf(stderr, exitFailure, "%v", err)
			continue
		}
		if !*asFixed {
			fmt.Fprintln(stdout, d)
			continue
		}
		f, err := difficulty.Fixed(d)
		if err != nil {
			status = failf(stderr, exitFailure, "%s: %v", c, err)
			continue
		}
		fmt.Fprintln(stdout, f)
	}
	return status
}
