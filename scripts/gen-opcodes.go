//go:build ignore
// +build ignore

// This script generates pkg/dwarf/op/opcodes.go from pkg/dwarf/op/opcodes.table

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"log"
	"os"
	"strconv"
	"strings"
)

type Opcode struct {
	Name string
	Code string
	Args string
}

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <input table> <output file>", os.Args[0])
	}

	fh, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer fh.Close()

	var opcodes []Opcode
	s := bufio.NewScanner(fh)
	lineno := 0
	for s.Scan() {
		lineno++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			log.Fatalf("%s:%d: expected name, code and arguments", os.Args[1], lineno)
		}
		if _, err := strconv.ParseUint(fields[1], 0, 8); err != nil {
			log.Fatalf("%s:%d: bad opcode %q: %v", os.Args[1], lineno, fields[1], err)
		}
		args, err := strconv.Unquote(fields[2])
		if err != nil {
			log.Fatalf("%s:%d: bad argument string %s: %v", os.Args[1], lineno, fields[2], err)
		}
		if i := strings.IndexFunc(args, func(r rune) bool { return !strings.ContainsRune("1248chwqusrzB", r) }); i >= 0 {
			log.Fatalf("%s:%d: unknown argument kind %q", os.Args[1], lineno, args[i])
		}
		opcodes = append(opcodes, Opcode{Name: fields[0], Code: fields[1], Args: args})
	}
	if err := s.Err(); err != nil {
		log.Fatal(err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// THIS FILE IS AUTOGENERATED, EDIT opcodes.table INSTEAD\n\n")
	fmt.Fprintf(&buf, "package op\n\n")

	fmt.Fprintf(&buf, "const (\n")
	for _, op := range opcodes {
		fmt.Fprintf(&buf, "\t%s Opcode = %s\n", op.Name, op.Code)
	}
	fmt.Fprintf(&buf, ")\n\n")

	fmt.Fprintf(&buf, "var opcodeName = map[Opcode]string{\n")
	for _, op := range opcodes {
		fmt.Fprintf(&buf, "\t%s: %q,\n", op.Name, op.Name)
	}
	fmt.Fprintf(&buf, "}\n")

	fmt.Fprintf(&buf, "var opcodeArgs = map[Opcode]string{\n")
	for _, op := range opcodes {
		fmt.Fprintf(&buf, "\t%s: %q,\n", op.Name, op.Args)
	}
	fmt.Fprintf(&buf, "}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(os.Args[2], src, 0666); err != nil {
		log.Fatal(err)
	}
}
