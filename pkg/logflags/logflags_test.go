package logflags

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoggerFactory(t *testing.T) {
	out := &bufferWriter{}
	logOut = out
	var got []logrus.Level
	SetLoggerFactory(func(level logrus.Level, fields Fields, w io.Writer) Logger {
		if fields["layer"] != "loader" {
			t.Errorf("unexpected fields %v", fields)
		}
		if w != out {
			t.Errorf("factory did not receive the log destination")
		}
		got = append(got, level)
		return nil
	})
	defer func() {
		loggerFactory = nil
		logOut = nil
		loader = false
	}()

	LoaderLogger()
	loader = true
	LoaderLogger()
	if !reflect.DeepEqual(got, []logrus.Level{logrus.ErrorLevel, logrus.DebugLevel}) {
		t.Fatalf("unexpected levels %v", got)
	}
}

func TestDefaultLogger(t *testing.T) {
	out := &bufferWriter{}
	logOut = out
	defer func() {
		logOut = nil
	}()

	for _, tc := range []struct {
		flag  bool
		level logrus.Level
	}{
		{false, logrus.ErrorLevel},
		{true, logrus.DebugLevel},
	} {
		l, ok := makeFlaggableLogger(tc.flag, Fields{"layer": "op"}).(*logrusLogger)
		if !ok {
			t.Fatalf("expected *logrusLogger")
		}
		if l.Logger.Level != tc.level {
			t.Errorf("flag %v: expected level %v got %v", tc.flag, tc.level, l.Logger.Level)
		}
		if l.Logger.Out != out || l.Logger.Formatter != textFormatterInstance {
			t.Errorf("flag %v: logger not writing to the log destination", tc.flag)
		}
		if l.Data["layer"] != "op" {
			t.Errorf("flag %v: missing layer field: %v", tc.flag, l.Data)
		}
	}
}

func TestDebugOutput(t *testing.T) {
	out := &bufferWriter{}
	logOut = out
	defer func() {
		logOut = nil
	}()

	makeFlaggableLogger(true, Fields{"layer": "test"}).WithField("offset", 4).Debugf("decoded %s", "DW_OP_nop")
	if s := out.String(); !strings.Contains(s, "decoded DW_OP_nop") || !strings.Contains(s, "layer=test") || !strings.Contains(s, "offset=4") {
		t.Fatalf("unexpected log output %q", s)
	}

	out.Reset()
	makeFlaggableLogger(false, Fields{"layer": "test"}).Debugf("hidden")
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestSetup(t *testing.T) {
	defer func() {
		dwarfOp, loader, repl = false, false, false
	}()
	if err := Setup(false, "op", ""); err != errLogstrWithoutLog {
		t.Fatalf("expected errLogstrWithoutLog got %v", err)
	}
	if err := Setup(true, "", ""); err != nil {
		t.Fatal(err)
	}
	if !DwarfOp() || Loader() || Repl() {
		t.Fatalf("default layer not selected: op=%v loader=%v repl=%v", DwarfOp(), Loader(), Repl())
	}
	if err := Setup(true, "loader,repl", ""); err != nil {
		t.Fatal(err)
	}
	if DwarfOp() || !Loader() || !Repl() {
		t.Fatalf("wrong layers enabled: op=%v loader=%v repl=%v", DwarfOp(), Loader(), Repl())
	}
	if err := Setup(true, "bogus", ""); err == nil {
		t.Fatal("expected error for unknown layer")
	}
}

type bufferWriter struct {
	bytes.Buffer
}

func (bw *bufferWriter) Close() error {
	return nil
}
