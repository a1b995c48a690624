package clip

import "strings"

// EnvKey derives the environment variable consulted for an argument:
// "{PROGRAM}_{NAME}" uppercased, with every non-alphanumeric rune in
// either part replaced by an underscore. Program "my-tool" and argument
// "input-file" give "MY_TOOL_INPUT_FILE". The derivation is pure so
// tests can assert exact key names.
func EnvKey(program, name string) string {
	return envToken(program) + "_" + envToken(name)
}

func envToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, s)
}
