// Package command turns heap operations into structured requests so that
// menus, HTTP handlers and stream consumers share one dispatch path.
package command

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	// ErrPathNotAllowed rejects file-backed builds arriving over a network transport.
	ErrPathNotAllowed = errors.New("build from a path is only allowed locally")
)

type Kind int

const (
	Build Kind = iota + 1
	Insert
	Delete
	ExtractMax
	ExtractMin
	Heapify
	Snapshot
	Exit
)

var kindNames = map[Kind]string{
	Build:      "build",
	Insert:     "insert",
	Delete:     "delete",
	ExtractMax: "extract-max",
	ExtractMin: "extract-min",
	Heapify:    "heapify",
	Snapshot:   "snapshot",
	Exit:       "exit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownCommand, "%q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "%d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Command is one request against the heap. Only the fields relevant to Kind
// are read: Path or Values for Build, Value for Insert, Index for Delete and
// Heapify.
type Command struct {
	Kind   Kind   `json:"kind"`
	Path   string `json:"path,omitempty"`
	Values []int  `json:"values,omitempty"`
	Value  int    `json:"value,omitempty"`
	Index  int    `json:"index,omitempty"`
}

// CheckRemote rejects commands a network caller may not issue.
func CheckRemote(cmd Command) error {
	if cmd.Kind == Build && cmd.Path != "" {
		return errors.Wrapf(ErrPathNotAllowed, "path %q", cmd.Path)
	}
	return nil
}

// Result reports what a command returned and the heap it left behind.
type Result struct {
	Kind     Kind  `json:"kind"`
	Value    *int  `json:"value,omitempty"`
	Elements []int `json:"elements"`
	Valid    bool  `json:"valid"`
	Exit     bool  `json:"exit,omitempty"`
}
