package repl

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/deosjr/rusp/lisp"
)

func TestShellHandle(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	var out bytes.Buffer
	s := NewShell(lisp.New(), DefaultConfig(), log, &out)

	for _, line := range []string{
		"",
		"(setq x",
		"  41)",
		"(+ x 1)",
		"(car 1)",
		"   ",
	} {
		s.handle(line)
	}

	want := "41\n42\n** error: wrong type argument: listp, 1\n"
	if got := out.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("got %d log entries want 1", len(hook.Entries))
	}
	if hook.LastEntry().Level != logrus.DebugLevel {
		t.Errorf("got level %s want debug", hook.LastEntry().Level)
	}
}
