package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/deosjr/rusp/lisp"
)

// Shell is the interactive loop around a Session: line editing, prompts
// and a persisted history file.
type Shell struct {
	cfg     Config
	session *Session
	log     logrus.FieldLogger
	out     io.Writer
}

func NewShell(l lisp.Lisp, cfg Config, log logrus.FieldLogger, out io.Writer) *Shell {
	return &Shell{cfg: cfg, session: NewSession(l), log: log, out: out}
}

// Run prompts until end of input (Ctrl-D). Ctrl-C drops a half-typed
// expression. Failures are printed and the loop carries on.
func (s *Shell) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	liner.HistoryLimit = s.cfg.HistoryLimit

	s.readHistory(line)
	defer s.writeHistory(line)

	for {
		prompt := s.cfg.Prompt
		if s.session.Pending() {
			prompt = s.cfg.ContinuationPrompt
		}
		input, err := line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			s.session.Reset()
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		s.handle(input)
	}
}

func (s *Shell) handle(input string) {
	out, more, err := s.session.Feed(input)
	switch {
	case more:
	case errors.Is(err, lisp.ErrEmptyInput):
	case err != nil:
		s.log.WithError(err).Debug("input rejected")
		fmt.Fprintf(s.out, "** error: %v\n", err)
	default:
		fmt.Fprintln(s.out, out)
	}
}

func (s *Shell) readHistory(line *liner.State) {
	path := s.cfg.HistoryPath()
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("file", path).Warn("cannot open history")
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		s.log.WithError(err).WithField("file", path).Warn("cannot read history")
	}
}

func (s *Shell) writeHistory(line *liner.State) {
	path := s.cfg.HistoryPath()
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		s.log.WithError(err).WithField("file", path).Warn("cannot save history")
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		s.log.WithError(err).WithField("file", path).Warn("cannot save history")
	}
}
