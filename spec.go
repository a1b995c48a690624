package clip

import (
	"fmt"
	"strings"
)

// Kind is the declared (or inferred) type of an argument value.
type Kind int

const (
	// KindAuto tries Int, Float, Bool and falls back to String.
	// When an argument name matches a common pattern ("count", "rate",
	// "verbose", ...) the kind is fixed at declaration time instead.
	KindAuto Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindPath
	KindList
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindPath:
		return "path"
	case KindList:
		return "list"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	}
	return "unknown"
}

// Spec declares one argument. Specs are registered with Parser.Add before
// any resolve call and are never mutated by parsing.
type Spec struct {
	// Name is the canonical identifier, e.g. "input-file". It must be
	// unique within its scope (top level or one subcommand).
	Name string

	Kind Kind

	// Default is the static fallback value. It must already have the Go
	// type matching Kind; it is used verbatim, skipping coercion and
	// validation.
	Default any

	// Required makes absence at every precedence tier a hard failure.
	Required bool

	// Validators run in order against the coerced value. The first
	// failure wins.
	Validators []Validator

	// EnvKey overrides the derived environment variable name. When empty
	// it is derived from the program name and Name, e.g. program
	// "my-tool" and argument "input-file" give MY_TOOL_INPUT_FILE.
	EnvKey string

	// Help is the usage line printed for this argument.
	Help string

	// Delim splits KindList values, "," when empty.
	Delim string

	// Elem optionally coerces each list element. The zero value keeps
	// elements as strings.
	Elem Kind
}

// Source is the precedence tier that supplied a resolved value.
type Source int

const (
	SourceMissing Source = iota
	SourceCommandLine
	SourceEnvironment
	SourceConfigFile
	SourceDefault
)

func (s Source) String() string {
	switch s {
	case SourceCommandLine:
		return "command line"
	case SourceEnvironment:
		return "environment"
	case SourceConfigFile:
		return "config file"
	case SourceDefault:
		return "default"
	}
	return "missing"
}

// Resolved is the outcome of resolving one Spec. Value is set only if
// coercion and every validator succeeded. Raw is the original string and
// is empty for SourceDefault and SourceMissing.
type Resolved struct {
	Source Source
	Raw    string
	Value  any
}

// ErrorKind classifies a resolution failure. The set is closed.
type ErrorKind int

const (
	MissingRequired ErrorKind = iota
	CoercionFailed
	ValidationFailed
	UnrecognizedArgument
	AmbiguousSubcommand
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequired:
		return "missing required"
	case CoercionFailed:
		return "coercion failed"
	case ValidationFailed:
		return "validation failed"
	case UnrecognizedArgument:
		return "unrecognized argument"
	case AmbiguousSubcommand:
		return "ambiguous subcommand"
	}
	return "unknown"
}

// Error is one resolution failure. Arg is empty when the error is not
// tied to a declared spec (an unrecognized token). Suggestions is
// populated for UnrecognizedArgument and AmbiguousSubcommand.
type Error struct {
	Arg         string
	Kind        ErrorKind
	Message     string
	Suggestions []string
}

func (e Error) Error() string {
	return e.Message
}

// Errors is the ordered failure list of one resolve call.
type Errors []Error

func (es Errors) Error() string {
	ret := []string{}
	for _, e := range es {
		ret = append(ret, fmt.Sprintf("[%s]", e.Message))
	}
	return strings.Join(ret, " ")
}

// Outcome is the aggregate result of one resolve call. When Errors is
// non-empty the call failed as a whole and Values must not be trusted;
// there is no silent degradation to defaults.
type Outcome struct {
	// Command is the dispatched subcommand name, empty at top level.
	Command string

	// Values maps top-level argument names to resolved values.
	Values map[string]Resolved

	// Sub maps the dispatched subcommand's argument names, nil when no
	// subcommand was active.
	Sub map[string]Resolved

	Errors Errors
}

// OK reports whether resolution succeeded for every spec.
func (o *Outcome) OK() bool {
	return len(o.Errors) == 0
}

// lookup finds a resolved value, subcommand scope first.
func (o *Outcome) lookup(name string) (Resolved, bool) {
	if r, has := o.Sub[name]; has {
		return r, true
	}
	r, has := o.Values[name]
	return r, has
}

// GetValue returns the resolved value of the argument, or nil if unset.
func (o *Outcome) GetValue(name string) any {
	r, _ := o.lookup(name)
	return r.Value
}

// GetInt returns the value of the argument as int
func (o *Outcome) GetInt(name string) int {
	if r, has := o.lookup(name); has {
		if v, ok := r.Value.(int); ok {
			return v
		}
	}
	return 0
}

// GetFloat returns the value of the argument as float64
func (o *Outcome) GetFloat(name string) float64 {
	if r, has := o.lookup(name); has {
		if v, ok := r.Value.(float64); ok {
			return v
		}
	}
	return 0
}

// GetBool returns the value of the argument as bool
func (o *Outcome) GetBool(name string) bool {
	if r, has := o.lookup(name); has {
		if v, ok := r.Value.(bool); ok {
			return v
		}
	}
	return false
}

// GetString returns the value of the argument as string. Path, file and
// directory values are strings too.
func (o *Outcome) GetString(name string) string {
	if r, has := o.lookup(name); has {
		if v, ok := r.Value.(string); ok {
			return v
		}
	}
	return ""
}

// GetStrings returns the value of a list argument whose elements were
// kept as strings.
func (o *Outcome) GetStrings(name string) []string {
	if r, has := o.lookup(name); has {
		if v, ok := r.Value.([]string); ok {
			return v
		}
	}
	return nil
}
