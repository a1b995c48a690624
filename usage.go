package clip

import (
	"fmt"
	"sort"
	"strings"
)

// Usage renders the help text of this scope: an aligned Options section
// and, when subcommands are registered, a Commands section with a hint
// on how to reach their own help.
func (p *Parser) Usage() string {
	optionUsageList := p.makeOptionUsageList()
	subcmdUsageList := p.makeSubcmdUsageList()

	usage := fmt.Sprintf("Usage: %s [OPTIONS]\n", p.program)
	if len(subcmdUsageList) > 0 {
		usage = fmt.Sprintf("Usage: %s [OPTIONS] [COMMAND]\n", p.program)
		usage += fmt.Sprintf(
			"\nCommands:\n%s\n", strings.Join(fmap(subcmdUsageList, shiftFour), "\n"),
		)
	}

	// options always have --help, thus not empty
	usage += fmt.Sprintf("\nOptions:\n%s\n", strings.Join(fmap(optionUsageList, shiftFour), "\n"))
	if len(subcmdUsageList) > 0 {
		usage += fmt.Sprintf(
			"\nRun `%s [COMMAND] -help` to print the help message of COMMAND\n\n",
			p.program,
		)
	}
	return usage
}

func (p *Parser) makeOptionUsageList() []string {
	const helpArg = "-help, --help"
	const boolArgFmt = "--%s"
	const generalArgFmt = "--%s <%s>"

	specs := make([]Spec, len(p.specs))
	copy(specs, p.specs)
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })

	leftCol := func(s Spec) string {
		if s.Kind == KindBool {
			return fmt.Sprintf(boolArgFmt, s.Name)
		}
		hint := s.Name
		if s.Help != "" {
			hint = s.Help
		}
		return fmt.Sprintf(generalArgFmt, s.Name, hint)
	}

	maxArgLength := len(helpArg)
	for _, s := range specs {
		maxArgLength = maxInt(maxArgLength, len(leftCol(s)))
	}

	optionUsageList := []string{
		fmt.Sprintf(
			"%s  %s",
			appendSpacesToLength(helpArg, maxArgLength), "print this message",
		),
	}
	for _, s := range specs {
		argUsage := appendSpacesToLength(leftCol(s), maxArgLength)
		if s.Kind == KindBool {
			hint := s.Name
			if s.Help != "" {
				hint = s.Help
			}
			argUsage = fmt.Sprintf("%s  set [%s] to true", argUsage, hint)
		}
		for _, extra := range specAnnotations(s) {
			argUsage = fmt.Sprintf("%s  %s", argUsage, extra)
		}
		optionUsageList = append(optionUsageList, argUsage)
	}
	return optionUsageList
}

func (p *Parser) makeSubcmdUsageList() []string {
	names := make([]string, len(p.subNames))
	copy(names, p.subNames)
	sort.Strings(names)

	maxCmdLength := 0
	for _, name := range names {
		maxCmdLength = maxInt(maxCmdLength, len(name))
	}
	subcmdUsageList := []string{}
	for _, name := range names {
		subcmdUsageList = append(
			subcmdUsageList,
			appendSpacesToLength(name, maxCmdLength),
		)
	}
	return subcmdUsageList
}

func specAnnotations(s Spec) []string {
	extras := []string{}
	if s.Required {
		extras = append(extras, "[required]")
	}
	if s.Default != nil {
		switch def := s.Default.(type) {
		case string:
			extras = append(extras, fmt.Sprintf(`[default: "%s"]`, def))
		default:
			extras = append(extras, fmt.Sprintf("[default: %v]", def))
		}
	}
	extras = append(extras, fmt.Sprintf("[env: %s]", s.EnvKey))
	return extras
}

func shiftFour(s string) string {
	const fourSpace = "    "
	return fourSpace + s
}

func fmap(ss []string, f func(string) string) []string {
	for i, s := range ss {
		ss[i] = f(s)
	}
	return ss
}

func appendSpacesToLength(s string, toLength int) string {
	needSpace := toLength - len(s)
	for i := 0; i < needSpace; i++ {
		s += " "
	}
	return s
}
