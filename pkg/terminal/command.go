package terminal

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cosiner/argv"

	"github.com/go-delve/dwarfdis/pkg/dwarf/dwarfbuilder"
	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
	"github.com/go-delve/dwarfdis/pkg/exprfile"
	"github.com/go-delve/dwarfdis/pkg/logflags"
)

type cmdfunc func(t *Term, args []string) error

type command struct {
	aliases        []string
	builtinAliases []string
	helpMsg        string
	cmdFn          cmdfunc
}

// Returns true if the command string matches one of the aliases for this command
func (c command) match(cmdstr string) bool {
	for _, v := range c.aliases {
		if v == cmdstr {
			return true
		}
	}
	return false
}

// Commands represents the commands for the interactive disassembler.
type Commands struct {
	cmds []command
}

// ExitRequestError is returned when the user exits the terminal.
type ExitRequestError struct{}

func (ere ExitRequestError) Error() string {
	return ""
}

// DisassemblerCommands returns a Commands struct with default commands defined.
func DisassemblerCommands() *Commands {
	c := &Commands{}

	c.cmds = []command{
		{aliases: []string{"help", "h"}, cmdFn: c.help, helpMsg: `Prints the help message.

	help [command]

Type "help" followed by the name of a command for more information about it.`},
		{aliases: []string{"dis", "d"}, cmdFn: disassemble, helpMsg: `Disassembles a stack program.

	dis <hex>...

The program is given as hex bytes, spaces and 0x prefixes are ignored:

	dis 91 68 06 23 10
	dis 0x91,0x68

If an instruction can not be decoded the instructions before it are
printed followed by the error.`},
		{aliases: []string{"decode"}, cmdFn: decode, helpMsg: `Decodes a single instruction.

	decode <hex>...

Prints the first instruction of the program next to its encoding,
trailing bytes are ignored.`},
		{aliases: []string{"asm"}, cmdFn: assemble, helpMsg: `Assembles a stack program.

	asm <mnemonic> [operands] ...

Prints the encoding of the program as hex. The DW_OP_ prefix of mnemonics
can be omitted, for example:

	asm breg7 -8 deref plus_uconst 0x10`},
		{aliases: []string{"opcodes", "ops"}, cmdFn: opcodes, helpMsg: `Lists supported opcodes.

	opcodes [prefix]

Lists the opcodes whose mnemonic starts with prefix, with their operands.`},
		{aliases: []string{"config"}, cmdFn: configureCmd, helpMsg: `Changes configuration parameters.

	config -list

Show all configuration parameters.

	config -save

Saves the configuration file to disk, overwriting the current configuration file.

	config <parameter> <value>

Changes the value of a configuration parameter.

	config alias <command> <alias>
	config alias <alias>

Defines <alias> as an alias to <command> or removes an alias.`},
		{aliases: []string{"exit", "quit", "q"}, cmdFn: exitCommand, helpMsg: "Exit the disassembler."},
	}

	return c
}

// Find will look up the command function for the given command input.
// If it cannot find the command it will default to noCmdAvailable().
func (c *Commands) Find(cmdstr string) cmdfunc {
	if cmdstr == "" {
		return nullCommand
	}

	for _, v := range c.cmds {
		if v.match(cmdstr) {
			return v.cmdFn
		}
	}

	return noCmdAvailable
}

// isCommand reports whether name is the primary name of a command.
func (c *Commands) isCommand(name string) bool {
	for _, v := range c.cmds {
		if v.aliases[0] == name {
			return true
		}
	}
	return false
}

// Call takes a command to execute.
func (c *Commands) Call(cmdstr string, t *Term) error {
	words, err := splitCommandLine(cmdstr)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	if logflags.Repl() {
		logflags.ReplLogger().WithField("command", words[0]).Debugf("args %q", words[1:])
	}
	return c.Find(words[0])(t, words[1:])
}

func splitCommandLine(cmdstr string) ([]string, error) {
	cmdstr = strings.TrimSpace(cmdstr)
	if cmdstr == "" {
		return nil, nil
	}
	v, err := argv.Argv(cmdstr,
		func(s string) (string, error) {
			return "", fmt.Errorf("Backtick not supported in '%s'", s)
		},
		nil)
	if err != nil {
		return nil, err
	}
	if len(v) != 1 {
		return nil, fmt.Errorf("illegal commandline '%s'", cmdstr)
	}
	return v[0], nil
}

// Merge takes aliases defined in the config struct and merges them with the default aliases.
func (c *Commands) Merge(allAliases map[string][]string) {
	for i := range c.cmds {
		if c.cmds[i].builtinAliases != nil {
			c.cmds[i].aliases = append(c.cmds[i].aliases[:0], c.cmds[i].builtinAliases...)
		}
	}
	for i := range c.cmds {
		if aliases, ok := allAliases[c.cmds[i].aliases[0]]; ok {
			if c.cmds[i].builtinAliases == nil {
				c.cmds[i].builtinAliases = make([]string, len(c.cmds[i].aliases))
				copy(c.cmds[i].builtinAliases, c.cmds[i].aliases)
			}
			c.cmds[i].aliases = append(c.cmds[i].aliases, aliases...)
		}
	}
}

var noCmdError = errors.New("command not available")

func noCmdAvailable(t *Term, args []string) error {
	return noCmdError
}

func nullCommand(t *Term, args []string) error {
	return nil
}

func exitCommand(t *Term, args []string) error {
	return ExitRequestError{}
}

func (c *Commands) help(t *Term, args []string) error {
	if len(args) > 0 {
		for _, cmd := range c.cmds {
			if cmd.match(args[0]) {
				fmt.Fprintln(t.stdout, cmd.helpMsg)
				return nil
			}
		}
		return noCmdError
	}

	fmt.Fprintln(t.stdout, "The following commands are available:")
	w := new(tabwriter.Writer)
	w.Init(t.stdout, 0, 8, 0, '-', 0)
	for _, cmd := range c.cmds {
		h := cmd.helpMsg
		if idx := strings.Index(h, "\n"); idx >= 0 {
			h = h[:idx]
		}
		if len(cmd.aliases) > 1 {
			fmt.Fprintf(w, "    %s (alias: %s) \t %s\n", cmd.aliases[0], strings.Join(cmd.aliases[1:], " | "), h)
		} else {
			fmt.Fprintf(w, "    %s \t %s\n", cmd.aliases[0], h)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(t.stdout)
	fmt.Fprintln(t.stdout, "Type help followed by a command for full documentation.")
	return nil
}

func parseProgram(args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, errors.New("not enough arguments")
	}
	return exprfile.ParseHex(strings.Join(args, " "))
}

func disassemble(t *Term, args []string) error {
	program, err := parseProgram(args)
	if err != nil {
		return err
	}
	insts, err := t.cache.Disassemble(program)
	if perr := t.printer.Print(program, insts); perr != nil {
		return perr
	}
	return err
}

func decode(t *Term, args []string) error {
	program, err := parseProgram(args)
	if err != nil {
		return err
	}
	sz, o, err := op.Decode(program)
	if err != nil {
		return err
	}
	p := *t.printer
	p.ShowBytes = true
	return p.Print(program, []op.Instruction{{Offset: 0, Size: sz, Op: o}})
}

func assemble(t *Term, args []string) error {
	if len(args) == 0 {
		return errors.New("not enough arguments")
	}
	program, err := dwarfbuilder.Assemble(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.stdout, "% x\n", program)
	return nil
}

func opcodes(t *Term, args []string) error {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	matches := Opcodes(prefix)
	if len(matches) == 0 {
		return fmt.Errorf("no opcode matches %q", prefix)
	}
	for _, opcode := range matches {
		fmt.Fprintf(t.stdout, "%#04x %s\n", byte(opcode), OpcodeSummary(opcode))
	}
	return nil
}
