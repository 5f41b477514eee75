// Package menu is the interactive front end: numbered options in, rendered
// heaps out. All heap work goes through a command executor.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tufitko/minmaxheap/pkg/command"
	"github.com/tufitko/minmaxheap/pkg/render"
)

const separator = "##########################################################################"

// Executor runs commands against a heap.
type Executor interface {
	Execute(ctx context.Context, cmd command.Command) (command.Result, error)
	Built() bool
}

type option struct {
	label string
	kind  command.Kind
}

var (
	initialOptions = []option{
		{"Build-Heap", command.Build},
		{"Exit", command.Exit},
	}
	builtOptions = []option{
		{"Build-Heap", command.Build},
		{"Heap-Extract-Max", command.ExtractMax},
		{"Heap-Extract-Min", command.ExtractMin},
		{"Heap-Insert", command.Insert},
		{"Heap-Delete", command.Delete},
		{"Heapify", command.Heapify},
		{"Exit", command.Exit},
	}
)

type Menu struct {
	in       *bufio.Scanner
	out      io.Writer
	executor Executor
	err      error
}

func New(in io.Reader, out io.Writer, executor Executor) *Menu {
	return &Menu{
		in:       bufio.NewScanner(in),
		out:      out,
		executor: executor,
	}
}

// Run shows the menu until Exit is chosen, input runs out or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	for ctx.Err() == nil && m.err == nil {
		kind, ok := m.choose()
		if !ok {
			break
		}
		if kind == 0 {
			continue
		}
		if kind == command.Exit {
			break
		}

		m.printf("\n%s %s %s\n", separator[:20], kind, separator[:20])
		cmd, ok := m.prompt(kind)
		if ok {
			m.execute(ctx, cmd)
		}
		m.printf("%s\n", separator)
	}
	m.printf("Goodbye!\n")
	if m.err != nil {
		return m.err
	}
	return m.in.Err()
}

// choose prints the options and reads a selection. A zero kind means the
// input was not a valid option; ok is false once input is exhausted.
func (m *Menu) choose() (command.Kind, bool) {
	options := builtOptions
	if !m.executor.Built() {
		options = initialOptions
		m.printf("\nOptions (other options will be available after you build your heap):\n")
	} else {
		m.printf("\nOptions:\n")
	}
	for i, o := range options {
		m.printf("%d.%s\n", i+1, o.label)
	}
	m.printf("Enter selection: ")

	line, ok := m.readLine()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(options) {
		m.printf("Bad user input - '%s', try again.\n", line)
		return 0, true
	}
	return options[n-1].kind, true
}

func (m *Menu) prompt(kind command.Kind) (command.Command, bool) {
	cmd := command.Command{Kind: kind}
	switch kind {
	case command.Build:
		m.printf("Enter the full path to the heap input file: ")
		path, ok := m.readLine()
		if !ok || path == "" {
			return cmd, false
		}
		cmd.Path = path
	case command.Insert:
		v, ok := m.readInt("Enter the value you want to insert to the heap: ")
		if !ok {
			return cmd, false
		}
		cmd.Value = v
	case command.Delete:
		i, ok := m.readInt("Enter the index in the heap array that you want to delete (indices start from 0): ")
		if !ok {
			return cmd, false
		}
		cmd.Index = i
	case command.Heapify:
		i, ok := m.readInt("Enter the index of the heap array you want to heapify: ")
		if !ok {
			return cmd, false
		}
		cmd.Index = i
	}
	return cmd, true
}

func (m *Menu) execute(ctx context.Context, cmd command.Command) {
	res, err := m.executor.Execute(ctx, cmd)
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}

	switch cmd.Kind {
	case command.Insert:
		m.printf("Inserted [%d] to heap.\n", cmd.Value)
	case command.Delete:
		m.printf("Deleted index [%d] from the heap.\n", cmd.Index)
	case command.ExtractMax:
		m.printf("Removed max value - %d\n", *res.Value)
	case command.ExtractMin:
		m.printf("Removed min value - %d\n", *res.Value)
	}

	m.printf("\nNew heap -\n")
	if m.err == nil {
		m.err = render.Heap(m.out, res.Elements)
	}
	if !res.Valid {
		m.printf("Warning: heap ordering is broken after this command.\n")
	}
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) readInt(prompt string) (int, bool) {
	m.printf("%s", prompt)
	line, ok := m.readLine()
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		m.printf("Bad number - '%s'\n", line)
		return 0, false
	}
	return v, true
}

func (m *Menu) printf(format string, args ...interface{}) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.out, format, args...)
}
