package clip

import "fmt"

// dispatch partitions tokens at the first non-flag token matching a
// registered subcommand name. Tokens before the split stay with the
// top-level scope, everything after it belongs to the subcommand's own
// resolver. A value consumed by a top-level flag is never mistaken for a
// subcommand name.
//
// When no subcommands are registered, dispatch is a no-op and stray
// tokens are left for the scope resolver to report.
func (p *Parser) dispatch(tokens []string) (sub string, top, rest []string, errs Errors) {
	if len(p.subs) == 0 {
		return "", tokens, nil, nil
	}

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if isFlag(tok) {
			name, _, hasInline := splitFlag(tok)
			top = append(top, tok)
			if hasInline {
				i++
				continue
			}
			consumesValue := false
			if s := p.spec(name); s != nil {
				consumesValue = s.Kind != KindBool
			} else {
				// unknown flag: assume it wanted the next non-flag
				// token, so that token is not misread as a subcommand
				consumesValue = i+1 < len(tokens) && !isFlag(tokens[i+1])
			}
			if consumesValue && i+1 < len(tokens) {
				top = append(top, tokens[i+1])
				i += 2
				continue
			}
			i++
			continue
		}

		if _, has := p.subs[tok]; has {
			return tok, top, tokens[i+1:], errs
		}
		errs = append(errs, Error{
			Kind:        AmbiguousSubcommand,
			Message:     fmt.Sprintf(errNoSubcommand, tok, p.program),
			Suggestions: Suggest(tok, p.subNames, maxSuggestions),
		})
		i++
	}
	return "", top, nil, errs
}
