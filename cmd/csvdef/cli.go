// cmd/csvdef is a thin CLI built entirely on the public core surface
// (parser.Parser, printer.Printer, record.Record, dialect.Dialect): it
// reads one dialect's CSV and re-emits another's, or dumps parsed
// records for inspection with --debug.
//
// parseOptions follows the teacher's cmd/mysqldef flag layout: a
// jessevdk/go-flags struct decoded with flags.NewParser(..., flags.None),
// --help/--version handled manually, and the leftover positional
// argument treated as the one file this invocation operates on.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
)

// Options is the resolved, validated form of the command line.
type Options struct {
	Input       string
	Output      string
	FromDialect string
	ToDialect   string
	DialectFile string
	Debug       bool
	Force       bool
}

func parseOptions(args []string) *Options {
	var opts struct {
		FromDialect string `long:"from-dialect" description:"Named dialect to parse input with" value-name:"name" default:"default"`
		ToDialect   string `long:"to-dialect" description:"Named dialect to print output with (defaults to --from-dialect)" value-name:"name"`
		DialectFile string `long:"dialect-file" description:"YAML file of dialect overrides, applied on top of --to-dialect" value-name:"path"`
		Output      string `short:"o" long:"output" description:"Write to this file instead of stdout" value-name:"path" default:"-"`
		Debug       bool   `long:"debug" description:"Dump parsed records and the resolved dialect instead of printing CSV"`
		Force       bool   `long:"force" description:"Overwrite --output without prompting"`
		Help        bool   `long:"help" description:"Show this help"`
		Version     bool   `long:"version" description:"Show this version"`
	}

	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options] [input.csv]"
	args, err := parser.ParseArgs(args)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	input := "-"
	if len(args) == 1 {
		input = args[0]
	} else if len(args) > 1 {
		fmt.Printf("Multiple input files are given: %v\n\n", args)
		parser.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	return &Options{
		Input:       input,
		Output:      opts.Output,
		FromDialect: opts.FromDialect,
		ToDialect:   opts.ToDialect,
		DialectFile: opts.DialectFile,
		Debug:       opts.Debug,
		Force:       opts.Force,
	}
}
