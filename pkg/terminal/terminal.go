package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-delve/liner"

	"github.com/go-delve/dwarfdis/pkg/config"
	"github.com/go-delve/dwarfdis/pkg/dwarf/opcache"
)

const historyFile string = ".dwarfdis_history"

// Term represents the interactive disassembler terminal.
type Term struct {
	conf    *config.Config
	prompt  string
	line    *liner.State
	cmds    *Commands
	stdout  io.Writer
	printer *Printer
	cache   *opcache.Cache
}

// New returns a new Term.
func New(conf *config.Config) (*Term, error) {
	if conf == nil {
		conf = &config.Config{}
	}
	t, err := newTerm(conf, NewPrinter(conf))
	if err != nil {
		return nil, err
	}
	t.line = liner.NewLiner()
	return t, nil
}

func newTerm(conf *config.Config, printer *Printer) (*Term, error) {
	cmds := DisassemblerCommands()
	if conf.Aliases != nil {
		cmds.Merge(conf.Aliases)
	}
	cache, err := opcache.New(conf.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Term{
		conf:    conf,
		prompt:  "(dwarfdis) ",
		cmds:    cmds,
		stdout:  printer.Out,
		printer: printer,
		cache:   cache,
	}, nil
}

// Close returns the terminal to its previous mode.
func (t *Term) Close() {
	if t.line != nil {
		t.line.Close()
	}
}

// Run begins running the terminal, it returns when the user exits.
func (t *Term) Run() (int, error) {
	defer t.Close()

	t.line.SetCtrlCAborts(true)
	t.line.SetCompleter(t.complete)

	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load history file: %v.\n", err)
	}

	f, err := os.Open(fullHistoryFile)
	if err != nil {
		f, err = os.Create(fullHistoryFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open history file: %v. History will not be saved for this session.\n", err)
		}
	}
	if f != nil {
		t.line.ReadHistory(f)
		f.Close()
	}
	defer t.saveHistory(fullHistoryFile)

	fmt.Fprintln(t.stdout, "Type 'help' for list of commands.")

	for {
		cmdstr, err := t.promptForInput()
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				fmt.Fprintln(t.stdout, "exit")
				return 0, nil
			}
			return 1, errors.New("prompt for input failed")
		}

		if err := t.cmds.Call(cmdstr, t); err != nil {
			if _, ok := err.(ExitRequestError); ok {
				return 0, nil
			}
			fmt.Fprintf(os.Stderr, "Command failed: %s\n", err)
		}
	}
}

func (t *Term) saveHistory(path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	t.line.WriteHistory(f)
}

func (t *Term) promptForInput() (string, error) {
	l, err := t.line.Prompt(t.prompt)
	if err != nil {
		return "", err
	}

	l = strings.TrimSuffix(l, "\n")
	if l != "" {
		t.line.AppendHistory(l)
	}

	return l, nil
}

// complete completes command names, and mnemonics after the asm and
// opcodes commands.
func (t *Term) complete(line string) (c []string) {
	i := strings.LastIndexByte(line, ' ')
	if i < 0 {
		for _, cmd := range t.cmds.cmds {
			for _, alias := range cmd.aliases {
				if strings.HasPrefix(alias, strings.ToLower(line)) {
					c = append(c, alias)
				}
			}
		}
		return
	}

	head, word := line[:i+1], line[i+1:]
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "asm", "opcodes", "ops":
	default:
		return nil
	}
	for _, opcode := range Opcodes(word) {
		name := opcode.String()
		if !strings.HasPrefix(word, mnemonicPrefix) {
			name = strings.TrimPrefix(name, mnemonicPrefix)
		}
		c = append(c, head+name)
	}
	return
}
