// Package script parses growlist scripts: line-oriented lists of container
// operations.
//
// Each non-blank line holds one operation, a keyword followed by its
// arguments separated by whitespace. Lines whose first non-blank character is
// '#' are comments. An argument may be written as a double-quoted Go string
// literal so that it can contain spaces or be empty.
//
//	# build a small list
//	new 3
//	append a
//	append "two words"
//	insert X 1
//	render
package script

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/vajrock/growlist/internal/config"
)

type argKind int

const (
	argValue argKind = iota
	argInt
)

// signatures lists the arguments of each operation. OpNew is special-cased:
// its capacity argument is optional.
var signatures = map[config.OpKind][]argKind{
	config.OpNew:      {argInt},
	config.OpAppend:   {argValue},
	config.OpInsert:   {argValue, argInt},
	config.OpRemoveAt: {argInt},
	config.OpRemove:   {argValue},
	config.OpGet:      {argInt},
	config.OpSet:      {argValue, argInt},
	config.OpIndexOf:  {argValue},
	config.OpLength:   {},
	config.OpLen:      {},
	config.OpCap:      {},
	config.OpRender:   {},
	config.OpDump:     {},
}

// Op is a single parsed operation.
type Op struct {
	Kind config.OpKind

	// Value is the element argument of append, insert, remove, set and index-of.
	Value string

	// Index is the index argument, or the capacity argument of new.
	Index int

	// HasIndex is false for a new operation without a capacity.
	HasIndex bool

	// Line is the 1-based line number of the operation in its script.
	Line int
}

// String returns the operation in canonical script syntax.
func (op *Op) String() string {
	parts := []string{op.Kind.String()}
	for _, kind := range signatures[op.Kind] {
		switch kind {
		case argValue:
			parts = append(parts, Quote(op.Value))
		case argInt:
			if op.HasIndex {
				parts = append(parts, strconv.Itoa(op.Index))
			}
		}
	}
	return strings.Join(parts, " ")
}

// Script is an ordered list of operations read from one file.
type Script struct {
	FilePath string
	Ops      []*Op
}

// Parse parses src as a script. Lines that cannot be parsed are recorded in
// the report and left out of the script; the remaining lines are still parsed.
func Parse(filePath string, src []byte) (*Script, *Report) {
	s := &Script{FilePath: filePath}
	report := &Report{
		FilePath: filePath,
		Problems: []*Problem{},
	}

	sc := bufio.NewScanner(bytes.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		column := strings.Index(text, trimmed) + 1

		op, err := parseLine(trimmed)
		if err != nil {
			report.AddProblem(newProblem(filePath, line, column, "%v", err))
			continue
		}
		op.Line = line
		s.Ops = append(s.Ops, op)
	}
	if err := sc.Err(); err != nil {
		report.AddProblem(newProblem(filePath, line+1, 1, "%v", err))
	}

	return s, report
}

func parseLine(text string) (*Op, error) {
	fields, err := splitFields(text)
	if err != nil {
		return nil, err
	}

	kind, ok := config.ParseOpKind(fields[0])
	if !ok {
		return nil, errors.Errorf("unknown operation %q", fields[0])
	}
	args := fields[1:]
	sig := signatures[kind]

	minArgs := len(sig)
	if kind == config.OpNew {
		minArgs = 0
	}
	if len(args) < minArgs || len(args) > len(sig) {
		return nil, errors.Errorf("%s takes %s, got %d", kind, arityString(minArgs, len(sig)), len(args))
	}

	op := &Op{Kind: kind}
	for i, arg := range args {
		switch sig[i] {
		case argValue:
			op.Value = arg
		case argInt:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, errors.Errorf("%s: %q is not an integer", kind, arg)
			}
			if kind == config.OpNew && n > config.MaxCapacity {
				return nil, errors.Errorf("new: capacity %d exceeds the maximum of %d", n, config.MaxCapacity)
			}
			op.Index = n
			op.HasIndex = true
		}
	}
	return op, nil
}

// splitFields splits a line on whitespace, unquoting double-quoted fields.
func splitFields(text string) ([]string, error) {
	var fields []string
	rest := text
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			return fields, nil
		}

		if rest[0] == '"' {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, errors.Errorf("malformed quoted argument %s", rest)
			}
			value, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, errors.Wrapf(err, "malformed quoted argument %s", quoted)
			}
			rest = rest[len(quoted):]
			if r, _ := utf8.DecodeRuneInString(rest); rest != "" && !unicode.IsSpace(r) {
				return nil, errors.Errorf("missing space after quoted argument %s", quoted)
			}
			fields = append(fields, value)
			continue
		}

		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		fields = append(fields, rest[:end])
		rest = rest[end:]
	}
}

// Quote returns s as it would be written as a script argument: unchanged
// when it is a plain word, a Go string literal otherwise.
func Quote(s string) string {
	if s == "" || strings.ContainsAny(s, "\"\\") || strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	}) >= 0 {
		return strconv.Quote(s)
	}
	return s
}

func arityString(minArgs, maxArgs int) string {
	switch {
	case minArgs == maxArgs && maxArgs == 0:
		return "no arguments"
	case minArgs == maxArgs && maxArgs == 1:
		return "1 argument"
	case minArgs == maxArgs:
		return strconv.Itoa(maxArgs) + " arguments"
	default:
		return strconv.Itoa(minArgs) + " to " + strconv.Itoa(maxArgs) + " arguments"
	}
}
