package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/csvdef/csvdef/dialect"
	"github.com/csvdef/csvdef/dialectfile"
	"github.com/csvdef/csvdef/parser"
	"github.com/csvdef/csvdef/printer"
	"github.com/csvdef/csvdef/util"
)

// version is set at build time via -ldflags, following the teacher's
// cmd/mysqldef convention.
var version string

func resolveDialect(name string) (dialect.Dialect, error) {
	d, ok := dialect.Predefined(name)
	if !ok {
		return dialect.Dialect{}, fmt.Errorf("unknown dialect %q (choices: %s)", name, strings.Join(dialect.PredefinedNames(), ", "))
	}
	return d, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// openOutput opens path for writing, prompting before overwriting an
// existing file when stdin is a terminal, and refusing outright when
// it isn't (a script can't answer a prompt it never sees).
func openOutput(path string, force bool) (io.WriteCloser, error) {
	if path == "-" || path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			fmt.Printf("%s already exists. Overwrite? [y/N] ", path)
			var answer string
			fmt.Scanln(&answer)
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				return nil, fmt.Errorf("aborted: %s exists", path)
			}
		}
	}

	return os.Create(path)
}

func main() {
	util.InitSlog()
	opts := parseOptions(os.Args[1:])
	slog.Debug("resolving dialects", "from", opts.FromDialect, "to", opts.ToDialect, "dialectFile", opts.DialectFile)

	fromDialect, err := resolveDialect(opts.FromDialect)
	if err != nil {
		log.Fatal(err)
	}

	toName := opts.ToDialect
	if toName == "" {
		toName = opts.FromDialect
	}
	toDialect, err := resolveDialect(toName)
	if err != nil {
		log.Fatal(err)
	}

	if opts.DialectFile != "" {
		f, err := dialectfile.Parse(opts.DialectFile)
		if err != nil {
			log.Fatal(err)
		}
		toDialect, err = f.Apply(toDialect)
		if err != nil {
			log.Fatal(err)
		}
	}

	in, err := openInput(opts.Input)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	p, err := parser.New(in, fromDialect)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Debug {
		pp.Println("dialect", toDialect)
		for {
			rec, err := p.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				log.Fatal(err)
			}
			pp.Println(rec)
		}
		return
	}

	out, err := openOutput(opts.Output, opts.Force)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	pr, err := printer.New(out, toDialect)
	if err != nil {
		log.Fatal(err)
	}

	for {
		rec, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		if err := pr.PrintParsedRecord(rec); err != nil {
			log.Fatal(err)
		}
	}

	if err := pr.Close(); err != nil {
		log.Fatal(err)
	}
}
