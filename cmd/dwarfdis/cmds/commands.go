package cmds

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-delve/dwarfdis/pkg/config"
	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
	"github.com/go-delve/dwarfdis/pkg/exprfile"
	"github.com/go-delve/dwarfdis/pkg/logflags"
	"github.com/go-delve/dwarfdis/pkg/terminal"
	"github.com/go-delve/dwarfdis/pkg/version"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path or file descriptor where logs should go.
	logDest string

	// loadOpts selects the part of the input file that is disassembled.
	loadOpts exprfile.Options
	// showBytes prints the encoding of every instruction.
	showBytes bool
	// color overrides the color mode of the configuration file.
	color colorMode

	conf *config.Config
)

// ErrFailed is returned by commands that already reported their failure to
// the user.
var ErrFailed = errors.New("command failed")

const dwarfdisCommandLongDesc = `Dwarfdis disassembles DWARF expressions.

DWARF expressions are the stack programs compilers emit to describe where
variables live (DW_AT_location, location lists) and how to compute the
canonical frame address. Dwarfdis decodes one such program and prints one
instruction per line preceded by its offset:

	0000: DW_OP_breg7 -0x8
	0002: DW_OP_deref

The program is read from a file, either as raw bytes or, with --hex, as hex
text. Use --section to read it from a section of an ELF file and
--offset/--length to select part of it.`

// colorMode is a pflag.Value accepting the color modes of the configuration file.
type colorMode string

func (c *colorMode) String() string { return string(*c) }

func (c *colorMode) Set(s string) error {
	switch s {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
		*c = colorMode(s)
		return nil
	}
	return fmt.Errorf("must be one of %s, %s or %s", config.ColorAuto, config.ColorAlways, config.ColorNever)
}

func (c *colorMode) Type() string { return "mode" }

// New returns an initialized command tree.
func New() *cobra.Command {
	// Config setup and load.
	conf = config.LoadConfig()
	loadOpts = exprfile.Options{}
	color = ""

	// Main dwarfdis root command.
	rootCommand := &cobra.Command{
		Use:   "dwarfdis [flags] <file>",
		Short: "Dwarfdis is a disassembler for DWARF expressions.",
		Long:  dwarfdisCommandLongDesc,
		Args:  cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logflags.Setup(log, logOutput, logDest)
		},
		RunE:          disassembleCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addLogFlags(rootCommand.PersistentFlags())
	addDisassemblyFlags(rootCommand.Flags())

	// 'opcodes' subcommand.
	opcodesCommand := &cobra.Command{
		Use:   "opcodes [prefix]",
		Short: "Lists supported opcodes.",
		Long: `Lists the opcodes whose mnemonic starts with prefix, with their operands.

The DW_OP_ prefix can be omitted, for example:

	dwarfdis opcodes breg`,
		Args: cobra.MaximumNArgs(1),
		RunE: opcodesCmd,
	}
	rootCommand.AddCommand(opcodesCommand)

	// 'repl' subcommand.
	replCommand := &cobra.Command{
		Use:   "repl",
		Short: "Starts the interactive disassembler.",
		Long: `Starts the interactive disassembler.

Stack programs are typed as hex and disassembled immediately, see 'help'
inside the interactive disassembler for the available commands.`,
		Args: cobra.NoArgs,
		RunE: replCmd,
	}
	replCommand.Flags().Var(&color, "color", "Highlight mnemonics: auto, always or never.")
	rootCommand.AddCommand(replCommand)

	// 'version' subcommand.
	var versionVerbose = false
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Dwarfdis DWARF Disassembler\n%s\n", version.DwarfdisVersion)
			if versionVerbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Build Details: %s\n", version.BuildInfo())
			}
		},
	}
	versionCommand.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "print verbose version info")
	rootCommand.AddCommand(versionCommand)

	rootCommand.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Help about logging flags.",
		Long: `Logging can be enabled by specifying the --log flag and using the
--log-output flag to select which components should produce logs.

The argument of --log-output must be a comma separated list of component
names selected from this list:


	op	Log every decoded instruction
	loader	Log how input files are read
	repl	Log commands of the interactive disassembler

Additionally --log-dest can be used to specify where the logs should be
written.
If the argument is a number it will be interpreted as a file descriptor,
otherwise as a file path.
`,
	})

	rootCommand.DisableAutoGenTag = true

	return rootCommand
}

func addLogFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&log, "log", "", false, "Enable logging.")
	fs.StringVarP(&logOutput, "log-output", "", "", `Comma separated list of components that should produce debug output (see 'dwarfdis help log')`)
	fs.StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file or file descriptor (see 'dwarfdis help log').")
}

func addDisassemblyFlags(fs *pflag.FlagSet) {
	fs.Int64Var(&loadOpts.Offset, "offset", 0, "Offset of the first byte of the program.")
	fs.Int64Var(&loadOpts.Length, "length", 0, "Length of the program, 0 reads up to the end.")
	fs.StringVar(&loadOpts.Section, "section", "", "Read the program from the named section of an ELF file.")
	fs.BoolVar(&loadOpts.Hex, "hex", false, "The file contains hex text instead of raw bytes.")
	fs.BoolVar(&showBytes, "bytes", false, "Print the encoding of every instruction.")
	fs.Var(&color, "color", "Highlight mnemonics: auto, always or never.")
}

// newPrinter returns a printer for the output of cmd, configured by conf
// and the command line flags.
func newPrinter(cmd *cobra.Command) *terminal.Printer {
	c := *conf
	if color != "" {
		c.Color = string(color)
	}
	if showBytes {
		c.ShowBytes = true
	}
	p := terminal.NewPrinter(&c)
	if out := cmd.OutOrStdout(); out != io.Writer(os.Stdout) {
		p.Out = out
		p.Color = c.Color == config.ColorAlways
	}
	return p
}

func disassembleCmd(cmd *cobra.Command, args []string) error {
	program, err := exprfile.Load(args[0], loadOpts)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		return ErrFailed
	}
	insts, derr := op.Disassemble(program)
	if err := newPrinter(cmd).Print(program, insts); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		return ErrFailed
	}
	if derr != nil {
		reportDecodeError(cmd.ErrOrStderr(), derr)
		return ErrFailed
	}
	return nil
}

func reportDecodeError(w io.Writer, err error) {
	var derr *op.DecodeError
	if !errors.As(err, &derr) {
		fmt.Fprintf(w, "%v\n", err)
		return
	}
	switch derr.Kind {
	case op.UnknownOpcode:
		fmt.Fprintf(w, "error at offset %#x: %v %#x\n", derr.Offset, derr.Kind, byte(derr.Opcode))
	case op.InvalidOperandSize:
		fmt.Fprintf(w, "error at offset %#x: %v %d for %s\n", derr.Offset, derr.Kind, derr.Value, derr.Opcode)
	default:
		fmt.Fprintf(w, "error at offset %#x: %v in %s\n", derr.Offset, derr.Kind, derr.Opcode)
	}
}

func opcodesCmd(cmd *cobra.Command, args []string) error {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	matches := terminal.Opcodes(prefix)
	if len(matches) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "no opcode matches %q\n", prefix)
		return ErrFailed
	}
	for _, opcode := range matches {
		fmt.Fprintf(cmd.OutOrStdout(), "%#04x %s\n", byte(opcode), terminal.OpcodeSummary(opcode))
	}
	return nil
}

func replCmd(cmd *cobra.Command, args []string) error {
	c := *conf
	if color != "" {
		c.Color = string(color)
	}
	term, err := terminal.New(&c)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		return ErrFailed
	}
	status, err := term.Run()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
	}
	if status != 0 {
		return ErrFailed
	}
	return nil
}
