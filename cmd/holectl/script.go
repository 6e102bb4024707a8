package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

type opKind int

const (
	opAlloc opKind = iota
	opFree
	opDump
)

func (k opKind) String() string {
	switch k {
	case opAlloc:
		return "alloc"
	case opFree:
		return "free"
	case opDump:
		return "dump"
	}
	return "unknown"
}

// scriptOp is one parsed script line.
type scriptOp struct {
	line  int
	kind  opKind
	name  string
	size  uintptr
	align uintptr
}

// defaultAlign is used when an alloc line gives no alignment.
const defaultAlign = 1

// parseScript reads an allocation script:
//
//	# comment
//	alloc <name> <size> [align]
//	free <name>
//	dump
//
// Sizes and alignments accept 0x and 0o prefixes.
func parseScript(r io.Reader) ([]scriptOp, error) {
	var ops []scriptOp
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		op := scriptOp{line: n}
		switch fields[0] {
		case "alloc":
			if len(fields) != 3 && len(fields) != 4 {
				return nil, errors.Newf("line %d: usage: alloc <name> <size> [align]", n)
			}
			op.kind = opAlloc
			op.name = fields[1]
			size, err := parseUint(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: size", n)
			}
			op.size = size
			op.align = defaultAlign
			if len(fields) == 4 {
				align, alignErr := parseUint(fields[3])
				if alignErr != nil {
					return nil, errors.Wrapf(alignErr, "line %d: align", n)
				}
				op.align = align
			}

		case "free":
			if len(fields) != 2 {
				return nil, errors.Newf("line %d: usage: free <name>", n)
			}
			op.kind = opFree
			op.name = fields[1]

		case "dump":
			if len(fields) != 1 {
				return nil, errors.Newf("line %d: dump takes no arguments", n)
			}
			op.kind = opDump

		default:
			return nil, errors.Newf("line %d: unknown command %q", n, fields[0])
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return ops, nil
}

func parseUint(s string) (uintptr, error) {
	v, err := strconv.ParseUint(s, 0, strconv.IntSize)
	if err != nil {
		return 0, err
	}
	return uintptr(v), nil
}

// loadScript parses the script at path, or stdin when path is "-".
func loadScript(path string) ([]scriptOp, error) {
	if path == "-" {
		return parseScript(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseScript(f)
}
