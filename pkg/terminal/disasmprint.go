package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/go-delve/dwarfdis/pkg/config"
	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
)

const (
	terminalHighlightEscapeCode string = "\033[%2dm"
	terminalResetEscapeCode     string = "\033[0m"
)

const (
	ansiBlack   = 30
	ansiBlue    = 34
	ansiWhite   = 37
	ansiBrBlack = 90
	ansiBrWhite = 97
)

// Printer writes disassembled stack programs, one instruction per line, as
//
//	offset: instruction
type Printer struct {
	Out io.Writer
	// ShowBytes adds a column with the encoding of each instruction.
	ShowBytes bool
	// Color highlights mnemonics using MnemonicColor.
	Color         bool
	MnemonicColor int
}

// NewPrinter returns a printer writing to stdout configured by conf.
// Colors are used if conf asks for them, or in auto mode when stdout is a
// terminal.
func NewPrinter(conf *config.Config) *Printer {
	if conf == nil {
		conf = &config.Config{}
	}
	p := &Printer{
		Out:           getColorableWriter(),
		ShowBytes:     conf.ShowBytes,
		Color:         ColorEnabled(conf.Color, os.Stdout),
		MnemonicColor: conf.MnemonicColor,
	}
	return p
}

// ColorEnabled reports whether output to f should be colored in the given
// mode.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// getColorableWriter returns a stdout writer that understands ANSI escape
// codes on every platform.
func getColorableWriter() io.Writer {
	return colorable.NewColorableStdout()
}

// Print writes insts, decoded from program.
func (p *Printer) Print(program []byte, insts []op.Instruction) error {
	bw := bufio.NewWriter(p.Out)
	tw := tabwriter.NewWriter(bw, 1, 8, 1, ' ', 0)
	for _, inst := range insts {
		if p.ShowBytes {
			fmt.Fprintf(tw, "%04x:\t%x\t%s\n", inst.Offset, program[inst.Offset:inst.Offset+inst.Size], p.format(inst.Op))
		} else {
			fmt.Fprintf(tw, "%04x: %s\n", inst.Offset, p.format(inst.Op))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}

func (p *Printer) format(o op.Op) string {
	s := o.String()
	if !p.Color {
		return s
	}
	mnemonic := o.Mnemonic()
	return fmt.Sprintf(terminalHighlightEscapeCode, p.color()) + mnemonic + terminalResetEscapeCode + strings.TrimPrefix(s, mnemonic)
}

func (p *Printer) color() int {
	c := p.MnemonicColor
	if (c > ansiWhite && c < ansiBrBlack) || c < ansiBlack || c > ansiBrWhite {
		return ansiBlue
	}
	return c
}
