// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gotox/grammar"
	"gotox/internal/config"
	"gotox/internal/errors"
	"gotox/internal/pipeline"
	"gotox/internal/program"
	"gotox/internal/render"
)

const (
	PROMPT      = ">> "
	CONTINUE    = ".. "
	sessionFile = "<repl>"
)

const help = `Enter textual symbol table items; they accumulate until :reset.
  :run [mode]       run the passes of mode (default: current) and print the result
  :mode <mode>      set the current mode
  :format <format>  set the output format (c, json, symtab)
  :passes           list the passes of the current mode
  :check            report unresolved references and type mismatches
  :dump             print the accumulated table
  :reset            forget every item
  :quit             leave
`

// Session holds the items entered so far and the current settings.
type Session struct {
	mode   pipeline.Mode
	format string
	opts   pipeline.Options
	source strings.Builder
	out    io.Writer
}

// NewSession creates a session that writes to out using cfg's settings.
func NewSession(cfg config.Config, out io.Writer) *Session {
	mode, err := pipeline.ParseMode(cfg.Mode)
	if err != nil {
		mode = pipeline.ModeC
	}
	return &Session{mode: mode, format: cfg.Format, opts: cfg.Options(), out: out}
}

// Start reads lines from in until EOF or :quit.
func Start(in io.Reader, out io.Writer) {
	NewSession(config.Default(), out).Run(in)
}

// Run reads lines from in until EOF or :quit.
func (s *Session) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(s.out, s.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return
		}

		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if !s.Command(strings.TrimSpace(line)) {
				return
			}
			continue
		}
		s.source.WriteString(line)
		s.source.WriteByte('\n')
	}
}

// prompt continues while the accumulated text does not parse yet.
func (s *Session) prompt() string {
	if strings.TrimSpace(s.source.String()) == "" {
		return PROMPT
	}
	if _, err := grammar.Parse(sessionFile, s.source.String()); err != nil {
		return CONTINUE
	}
	return PROMPT
}

// Command executes a meta command and reports whether the session goes on.
func (s *Session) Command(line string) bool {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case ":quit", ":q":
		return false
	case ":help", ":h":
		fmt.Fprint(s.out, help)
	case ":reset":
		s.source.Reset()
	case ":mode":
		mode, err := pipeline.ParseMode(arg)
		if err != nil {
			s.report(err)
			break
		}
		s.mode = mode
	case ":format":
		cfg := config.Default()
		cfg.Format = arg
		if err := cfg.Validate(); err != nil {
			s.report(err)
			break
		}
		s.format = arg
	case ":passes":
		p, err := pipeline.New(s.mode, s.opts)
		if err != nil {
			s.report(err)
			break
		}
		for i, name := range p.PassNames() {
			fmt.Fprintf(s.out, "%d. %s: %s\n", i+1, name, pipeline.Describe(name))
		}
	case ":check":
		table, ok := s.load()
		if !ok {
			break
		}
		opts := s.opts
		opts.CheckTypes = true
		diags := pipeline.Diagnose(table, opts)
		for _, pe := range diags {
			s.report(pe)
		}
		if len(diags) == 0 {
			fmt.Fprintf(s.out, "ok: %d symbol(s)\n", table.Len())
		}
	case ":dump":
		if table, ok := s.load(); ok {
			fmt.Fprint(s.out, grammar.Format(table))
		}
	case ":run":
		mode := s.mode
		if arg != "" {
			m, err := pipeline.ParseMode(arg)
			if err != nil {
				s.report(err)
				break
			}
			mode = m
		}
		s.run(mode)
	default:
		fmt.Fprintf(s.out, "unknown command %s (try :help)\n", fields[0])
	}
	return true
}

func (s *Session) run(mode pipeline.Mode) {
	table, ok := s.load()
	if !ok {
		return
	}
	p, err := pipeline.New(mode, s.opts)
	if err != nil {
		s.report(err)
		return
	}
	out, err := p.Run(table)
	if err != nil {
		s.report(err)
		return
	}
	if err := render.Write(s.out, s.format, out); err != nil {
		s.report(err)
	}
}

func (s *Session) load() (*program.SymbolTable, bool) {
	table, err := grammar.Load(sessionFile, s.source.String())
	if err != nil {
		s.report(err)
		return nil, false
	}
	return table, true
}

func (s *Session) report(err error) {
	reporter := errors.NewErrorReporter()
	reporter.AddSource(sessionFile, s.source.String())
	fmt.Fprint(s.out, reporter.Format(err))
}
