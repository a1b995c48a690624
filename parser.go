package clip

import (
	"fmt"
	"os"
	"strings"
)

const ( // declaration time errors
	errEmptyName      = "argument name must not be empty"
	errHelpIsReserved = `"help" is a reserved word, please change the name of argument %q`
	errArgRedefined   = `argument %q is redefined in %q`
	errCmdRedefined   = `subcommand %q is redefined in %q`
	errSubSubCommand  = `subcommand %q: nested subcommands are not supported`
	errBadDefault     = `default value %#v of argument %q does not match kind "%s"`
)

// Parser owns the argument specs of one scope: the top level, or one
// subcommand. Declaration happens once, before parsing; a Parser is
// read-only during Resolve, so independent resolve calls are reentrant.
//
// Misdeclarations (duplicate names, defaults of the wrong type) panic at
// declaration time: they mean the calling program is misconfigured, not
// that user input is invalid.
type Parser struct {
	program string
	parent  *Parser

	specs []Spec
	index map[string]int

	subs     map[string]*Parser
	subNames []string

	configFiles []string
	configMap   map[string]any
	prompter    Prompter
}

// New creates a parser scope for the given program name. The program
// name seeds derived environment keys and usage text.
func New(program string) *Parser {
	return &Parser{
		program: program,
		index:   map[string]int{},
		subs:    map[string]*Parser{},
	}
}

// Add registers one argument spec and returns the parser for chaining.
// The spec is normalized on the way in: the environment key is derived
// unless overridden, the list delimiter defaults to a comma, and a
// KindAuto spec is fixed from its typed default or its name pattern.
func (p *Parser) Add(s Spec) *Parser {
	if s.Name == "" {
		panic(errEmptyName)
	}
	if s.Name == "help" {
		panic(fmt.Sprintf(errHelpIsReserved, s.Name))
	}
	if _, has := p.index[s.Name]; has {
		panic(fmt.Sprintf(errArgRedefined, s.Name, p.program))
	}

	if s.EnvKey == "" {
		s.EnvKey = EnvKey(p.program, s.Name)
	}
	if s.Delim == "" {
		s.Delim = defaultDelim
	}
	if s.Kind == KindAuto {
		if s.Default != nil {
			s.Kind = kindOfDefault(s.Default)
		} else {
			s.Kind = inferKind(s.Name)
		}
	}
	if s.Default != nil && !defaultMatchesKind(s.Default, s.Kind) {
		panic(fmt.Sprintf(errBadDefault, s.Default, s.Name, s.Kind))
	}

	p.index[s.Name] = len(p.specs)
	p.specs = append(p.specs, s)
	return p
}

// Sub registers a subcommand and returns its parser scope. Only one
// subcommand level is supported.
func (p *Parser) Sub(name string) *Parser {
	if p.parent != nil {
		panic(fmt.Sprintf(errSubSubCommand, name))
	}
	if _, has := p.subs[name]; has {
		panic(fmt.Sprintf(errCmdRedefined, name, p.program))
	}
	sub := New(p.program + " " + name)
	sub.parent = p
	p.subs[name] = sub
	p.subNames = append(p.subNames, name)
	return sub
}

// names returns the declared argument names in declaration order.
func (p *Parser) names() []string {
	ns := make([]string, len(p.specs))
	for i, s := range p.specs {
		ns[i] = s.Name
	}
	return ns
}

func (p *Parser) spec(name string) *Spec {
	if i, has := p.index[name]; has {
		return &p.specs[i]
	}
	return nil
}

// ConfigFiles adds config files consulted by Parse, in ascending
// precedence: values from later files override earlier ones. Missing
// files are skipped. The core Resolve call is unaffected; it consumes
// an already-parsed mapping.
func (p *Parser) ConfigFiles(paths ...string) *Parser {
	p.configFiles = append(p.configFiles, paths...)
	return p
}

// Config injects a pre-parsed config mapping consulted by Parse, on top
// of any config files.
func (p *Parser) Config(m map[string]any) *Parser {
	p.configMap = m
	return p
}

// Parse is the command-line entry point: it resolves os.Args against a
// snapshot of the environment and the configured config files, prints
// every resolution error plus the usage text on failure, and exits with
// status 2. --help prints the usage of the addressed scope and exits 0.
// Library callers that want data instead of process exits use Resolve.
func (p *Parser) Parse() *Outcome {
	tokens := os.Args[1:]
	if scope, isHelp := p.helpScope(tokens); isHelp {
		fmt.Print(scope.Usage())
		os.Exit(0)
	}

	config, err := p.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	env := envSnapshot()

	out := p.Resolve(tokens, env, config)
	if !out.OK() && p.prompter != nil {
		if prompted, ok := p.promptMissing(out); ok {
			out = p.Resolve(append(tokens, prompted...), env, config)
		}
	}
	if !out.OK() {
		renderErrors(os.Stderr, out.Errors)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "The usage is:")
		fmt.Fprint(os.Stderr, p.Usage())
		os.Exit(2)
	}
	return out
}

// helpScope reports whether tokens ask for help, and for which scope: a
// help flag after a registered subcommand name addresses that
// subcommand.
func (p *Parser) helpScope(tokens []string) (*Parser, bool) {
	scope := p
	for _, tok := range tokens {
		if isFlag(tok) {
			if name, _, _ := splitFlag(tok); name == "help" {
				return scope, true
			}
			continue
		}
		if sub, has := scope.subs[tok]; has {
			scope = sub
		}
	}
	return nil, false
}

// loadConfig merges the configured files in order, then the injected
// mapping on top.
func (p *Parser) loadConfig() (map[string]any, error) {
	merged := map[string]any{}
	for _, path := range p.configFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		m, err := loadMapping(path)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		mergeMapping(merged, m)
	}
	mergeMapping(merged, p.configMap)
	return merged, nil
}

func envSnapshot() map[string]string {
	env := map[string]string{}
	for _, pair := range os.Environ() {
		if idx := strings.Index(pair, "="); idx > 0 {
			env[pair[:idx]] = pair[idx+1:]
		}
	}
	return env
}

// QuickParse builds a one-off parser for simple programs and runs its
// command-line entry point.
func QuickParse(program string, specs ...Spec) *Outcome {
	p := New(program)
	for _, s := range specs {
		p.Add(s)
	}
	return p.Parse()
}
