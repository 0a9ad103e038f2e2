package main

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/lmorg/readline"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/zephyrtronium/formula"
)

var (
	mode   = kingpin.Flag("mode", "Arithmetic to evaluate with.").Short('m').Default("number").Enum("number", "float", "int", "complex", "decimal", "big")
	prec   = kingpin.Flag("prec", "Bits of precision for big arithmetic, or decimal places of decimal division.").Default("64").Uint()
	verb   = kingpin.Flag("fmt", "Result formatting string.").Default("%v").String()
	echo   = kingpin.Flag("echo", "Print parse trees.").Bool()
	size   = kingpin.Flag("cache", "Number of parsed formulas to keep.").Default("128").Int()
	debug  = kingpin.Flag("debug", "Log cache activity.").Bool()
	inname = kingpin.Flag("in", "Input file with one formula per line, or - for stdin.").String()
	first  = kingpin.Flag("ans", "Initial value of @, as a formula.").Default("0").String()
	args   = kingpin.Arg("formula", "Formulas to evaluate.").Strings()
)

var (
	errColor  = color.New(color.FgRed)
	echoColor = color.New(color.Faint)
	errFailed = errors.New("some formulas could not be evaluated")
)

const prompt = "> "

func main() {
	kingpin.CommandLine.Help = "Evaluate formulas. Each result is @ in the next formula."
	kingpin.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var err error
	switch *mode {
	case "number":
		err = run[formula.Number](formula.Dynamic{}, log)
	case "float":
		err = run[float64](formula.Float64{}, log)
	case "int":
		err = run[int64](formula.Int64{}, log)
	case "complex":
		err = run[complex128](formula.Complex128{}, log)
	case "decimal":
		err = run[decimal.Decimal](formula.Decimal{Precision: int32(*prec)}, log)
	case "big":
		err = run[*big.Float](formula.BigFloat{Prec: *prec}, log)
	}
	if errors.Is(err, errFailed) {
		os.Exit(1)
	}
	kingpin.FatalIfError(err, "")
}

// session evaluates a sequence of formulas, carrying each result into the
// next as @.
type session[T any] struct {
	cache  *formula.Cache[T]
	ans    T
	log    zerolog.Logger
	failed bool
}

func run[T any](num formula.Numeric[T], log zerolog.Logger) error {
	c, err := formula.NewCache(num, *size, log)
	if err != nil {
		return err
	}
	s := &session[T]{cache: c, log: log}
	if s.ans, err = c.Eval(*first, s.ans); err != nil {
		return errors.Wrapf(err, "evaluating --ans %q", *first)
	}
	for _, a := range *args {
		s.do(a)
	}

	switch {
	case *inname != "" && *inname != "-":
		f, err := os.Open(*inname)
		if err != nil {
			return errors.Wrap(err, "opening input")
		}
		defer f.Close()
		if err := s.lines(f); err != nil {
			return errors.Wrapf(err, "reading %s", *inname)
		}
	case *inname == "-", len(*args) == 0:
		fd := os.Stdin.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			s.repl()
			break
		}
		if err := s.lines(os.Stdin); err != nil {
			return errors.Wrap(err, "reading stdin")
		}
	}
	log.Debug().Int("cached", c.Len()).Msg("done")
	if s.failed {
		return errFailed
	}
	return nil
}

// do evaluates one formula and prints its result or error.
func (s *session[T]) do(src string) {
	e, err := s.cache.Parse(src)
	if err != nil {
		s.fail(src, err)
		return
	}
	if *echo {
		echoColor.Printf("%v : ", e)
	}
	r, err := e.Eval(s.ans)
	if err != nil {
		s.fail(src, err)
		return
	}
	s.ans = r
	fmt.Printf(*verb+"\n", r)
}

func (s *session[T]) fail(src string, err error) {
	s.failed = true
	s.log.Debug().Str("formula", src).Err(err).Msg("failed")
	errColor.Fprintln(os.Stderr, err)
}

// lines evaluates each non-blank line of r.
func (s *session[T]) lines(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			s.do(line)
		}
	}
	return sc.Err()
}

// repl reads formulas interactively until the terminal is closed. Errors in
// the REPL do not affect the exit status.
func (s *session[T]) repl() {
	failed := s.failed
	rl := readline.NewInstance()
	rl.SetPrompt(prompt)
	for {
		line, err := rl.Readline()
		if err != nil {
			s.log.Debug().Err(err).Msg("readline")
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.do(line)
	}
	s.failed = failed
}
