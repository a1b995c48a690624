package clip

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Prompter supplies a value for a required argument that resolved to
// MissingRequired. Returning false leaves the argument missing. The
// resolver core never prompts; a Prompter is consulted by the Parse
// glue only, and only when the caller opted in with WithPrompter.
type Prompter func(s Spec) (value string, ok bool)

// WithPrompter opts the command-line entry point into interactive
// recovery of missing required arguments.
func (p *Parser) WithPrompter(fn Prompter) *Parser {
	p.prompter = fn
	return p
}

// StdinPrompter asks on the terminal, reading one line per missing
// argument.
func StdinPrompter() Prompter {
	rd := bufio.NewReader(os.Stdin)
	return func(s Spec) (string, bool) {
		fmt.Fprintf(os.Stderr, "%s (%s): ", s.Name, s.Kind)
		line, err := rd.ReadString('\n')
		if err != nil {
			return "", false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return "", false
		}
		return line, true
	}
}

// promptMissing turns prompted values into command-line tokens appended
// to the original ones. Appending keeps subcommand arguments behind the
// subcommand token and lets the command-line tier win as usual.
func (p *Parser) promptMissing(out *Outcome) (tokens []string, any bool) {
	scopes := []*Parser{p}
	if out.Command != "" {
		scopes = append(scopes, p.subs[out.Command])
	}
	for _, e := range out.Errors {
		if e.Kind != MissingRequired {
			continue
		}
		for _, scope := range scopes {
			s := scope.spec(e.Arg)
			if s == nil {
				continue
			}
			if value, ok := p.prompter(*s); ok {
				tokens = append(tokens, "--"+s.Name, value)
				any = true
			}
			break
		}
	}
	return tokens, any
}
