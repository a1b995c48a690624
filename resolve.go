package clip

import (
	"fmt"
	"strings"
)

const ( // resolve time errors
	errNoValue        = `no value provided for argument "--%s" in "%s"`
	errNoArgument     = `argument "--%s" provided in "%s" but not defined`
	errStrayToken     = `unexpected token "%s" in "%s"`
	errNoSubcommand   = `subcommand "%s" provided in "%s" but not defined`
	errParseArg       = `error parsing argument "--%s %s": %v`
	errValidateArg    = `invalid value for argument "--%s": %v`
	errValidatorPanic = `validator of argument "--%s" failed unexpectedly`
	errArgNotFound    = `argument "--%s" is required in "%s" but not provided`
)

// Resolve determines a final value for every declared spec by
// consulting, in fixed precedence order, the command-line tokens, the
// environment mapping, the config mapping and the static default.
// Tokens must already be shell-split; env maps variable names to values;
// config is an already-parsed mapping (keyed by argument name, with an
// optional nested mapping per subcommand name).
//
// Resolve never fails part-way: every resolution error is collected and
// the returned outcome carries all of them. It performs no I/O beyond
// what validators do themselves and is deterministic over its inputs.
func (p *Parser) Resolve(tokens []string, env map[string]string, config map[string]any) *Outcome {
	sub, topTokens, subTokens, dispatchErrs := p.dispatch(tokens)

	known := p.names()
	if sub != "" {
		known = append(known, p.subs[sub].names()...)
	}

	out := &Outcome{Command: sub}
	out.Errors = append(out.Errors, dispatchErrs...)

	var errs Errors
	out.Values, errs = p.resolveScope(topTokens, env, config, known)
	out.Errors = append(out.Errors, errs...)

	if sub != "" {
		out.Sub, errs = p.subs[sub].resolveScope(subTokens, env, subMapping(config, sub), known)
		out.Errors = append(out.Errors, errs...)
	}
	if len(out.Errors) == 0 {
		out.Errors = nil
	}
	return out
}

// resolveScope resolves the specs of one scope. known is the suggestion
// candidate set for unrecognized flags: the top-level names plus the
// active subcommand's names.
func (p *Parser) resolveScope(
	tokens []string, env map[string]string, config map[string]any, known []string,
) (map[string]Resolved, Errors) {
	raws, errs := p.scanTokens(tokens, known)

	values := make(map[string]Resolved, len(p.specs))
	for i := range p.specs {
		s := &p.specs[i]

		var raw string
		var src Source
		if r, has := raws[s.Name]; has {
			raw, src = r, SourceCommandLine
		} else if r, has := env[s.EnvKey]; has {
			raw, src = r, SourceEnvironment
		} else if v, has := config[s.Name]; has {
			raw, src = configRaw(v, s.Delim), SourceConfigFile
		} else if s.Default != nil {
			// the default is pre-typed, coercion and validation are
			// skipped
			values[s.Name] = Resolved{Source: SourceDefault, Value: s.Default}
			continue
		} else if s.Required {
			errs = append(errs, Error{
				Arg:     s.Name,
				Kind:    MissingRequired,
				Message: fmt.Sprintf(errArgNotFound, s.Name, p.program),
			})
			continue
		} else {
			// optional and unset everywhere, not an error
			values[s.Name] = Resolved{}
			continue
		}

		v, err := coerce(raw, s.Kind, s.Delim, s.Elem)
		if err != nil {
			errs = append(errs, Error{
				Arg:     s.Name,
				Kind:    CoercionFailed,
				Message: fmt.Sprintf(errParseArg, s.Name, raw, err),
			})
			continue
		}
		if verr := runValidators(s.Name, v, s.Validators); verr != nil {
			errs = append(errs, *verr)
			continue
		}
		values[s.Name] = Resolved{Source: src, Raw: raw, Value: v}
	}
	return values, errs
}

// scanTokens pairs flag tokens with their values. Later occurrences of
// the same flag win, matching what a shell user expects from appending
// an override. Unrecognized flag-like tokens become errors carrying
// suggestions; their trailing value token is swallowed so one typo makes
// one error.
func (p *Parser) scanTokens(tokens []string, known []string) (map[string]string, Errors) {
	raws := map[string]string{}
	var errs Errors
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if !isFlag(tok) {
			errs = append(errs, Error{
				Kind:        UnrecognizedArgument,
				Message:     fmt.Sprintf(errStrayToken, tok, p.program),
				Suggestions: Suggest(tok, known, maxSuggestions),
			})
			i++
			continue
		}

		name, inline, hasInline := splitFlag(tok)
		s := p.spec(name)
		if s == nil {
			errs = append(errs, Error{
				Kind:        UnrecognizedArgument,
				Message:     fmt.Sprintf(errNoArgument, name, p.program),
				Suggestions: Suggest(name, known, maxSuggestions),
			})
			if !hasInline && i+1 < len(tokens) && !isFlag(tokens[i+1]) {
				i += 2 // assume the typo'd flag consumed its value
			} else {
				i++
			}
			continue
		}

		switch {
		case hasInline:
			raws[s.Name] = inline
			i++
		case s.Kind == KindBool:
			raws[s.Name] = "true"
			i++
		default:
			if i+1 >= len(tokens) {
				errs = append(errs, Error{
					Arg:     s.Name,
					Kind:    CoercionFailed,
					Message: fmt.Sprintf(errNoValue, name, p.program),
				})
				i++
				continue
			}
			raws[s.Name] = tokens[i+1]
			i += 2
		}
	}
	return raws, errs
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "-") && tok != "-" && tok != "--"
}

// splitFlag strips the dash prefix and an optional inline "=value".
func splitFlag(tok string) (name, inline string, hasInline bool) {
	name = strings.TrimLeft(tok, "-")
	if idx := strings.Index(name, "="); idx != -1 {
		return name[:idx], name[idx+1:], true
	}
	return name, "", false
}

// subMapping extracts the nested config mapping of a subcommand, if the
// config carries one under the subcommand's name.
func subMapping(config map[string]any, sub string) map[string]any {
	if nested, ok := config[sub].(map[string]any); ok {
		return nested
	}
	return nil
}
