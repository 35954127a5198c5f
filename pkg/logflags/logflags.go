package logflags

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var dwarfOp = false
var loader = false
var repl = false

var logOut io.WriteCloser

var textFormatterInstance = &logrus.TextFormatter{
	DisableColors:    true,
	DisableTimestamp: true,
}

func makeLogger(level logrus.Level, fields Fields) Logger {
	if lf := loggerFactory; lf != nil {
		return lf(level, fields, logOut)
	}
	logger := logrus.New().WithFields(logrus.Fields(fields))
	logger.Logger.Formatter = textFormatterInstance
	if logOut != nil {
		logger.Logger.Out = logOut
	}
	logger.Logger.Level = level
	return &logrusLogger{logger}
}

func makeFlaggableLogger(flag bool, fields Fields) Logger {
	if !flag {
		return makeLogger(logrus.ErrorLevel, fields)
	}
	return makeLogger(logrus.DebugLevel, fields)
}

// DwarfOp returns true if pkg/dwarf/op should trace every decoded
// instruction.
func DwarfOp() bool {
	return dwarfOp
}

// DwarfOpLogger returns a logger for the expression decoder.
func DwarfOpLogger() Logger {
	return makeFlaggableLogger(dwarfOp, Fields{"layer": "dwarf", "kind": "op"})
}

// Loader returns true if the input loader should log.
func Loader() bool {
	return loader
}

// LoaderLogger returns a logger for the input loader.
func LoaderLogger() Logger {
	return makeFlaggableLogger(loader, Fields{"layer": "loader"})
}

// Repl returns true if the interactive terminal should log the commands
// it executes.
func Repl() bool {
	return repl
}

// ReplLogger returns a logger for the interactive terminal.
func ReplLogger() Logger {
	return makeFlaggableLogger(repl, Fields{"layer": "repl"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets the logging flags based on the contents of logstr.
// If logDest is not empty logs will be redirected to the file descriptor or
// file path specified by logDest.
func Setup(logFlag bool, logstr, logDest string) error {
	dwarfOp, loader, repl = false, false, false
	if logDest != "" {
		Close()
		n, err := strconv.Atoi(logDest)
		if err == nil {
			logOut = os.NewFile(uintptr(n), "dwarfdis-logs")
		} else {
			fh, err := os.Create(logDest)
			if err != nil {
				return fmt.Errorf("could not create log file: %v", err)
			}
			logOut = fh
		}
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(io.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "op"
	}
	v := strings.Split(logstr, ",")
	for _, logcmd := range v {
		switch logcmd {
		case "op":
			dwarfOp = true
		case "loader":
			loader = true
		case "repl":
			repl = true
		default:
			return fmt.Errorf("unknown log layer %q", logcmd)
		}
	}
	return nil
}

// Close closes the logger output.
func Close() {
	if logOut != nil {
		logOut.Close()
		logOut = nil
	}
}
