package main

import (
	"errors"
	"fmt"

	"github.com/clipd/clip"
)

// A file-copy style tool: a few top-level options, a "fetch" subcommand
// with its own scope, config files merged below environment variables
// and command-line flags.
func main() {
	p := clip.New("my-tool").
		Add(clip.Spec{Name: "input", Kind: clip.KindFile, Required: true,
			Validators: []clip.Validator{clip.Exists()},
			Help:       "input file"}).
		Add(clip.Spec{Name: "count", Default: 1,
			Validators: []clip.Validator{clip.Range(1, 64)},
			Help:       "n workers"}).
		Add(clip.Spec{Name: "verbose", Help: "verbose output"}).
		Add(clip.Spec{Name: "mode", Kind: clip.KindString, Default: "copy",
			Validators: []clip.Validator{clip.Choice("copy", "move")},
			Help:       "transfer mode"}).
		Add(clip.Spec{Name: "tags", Kind: clip.KindList, Help: "labels"}).
		ConfigFiles("/etc/my-tool/config.yaml", ".my-tool.yaml").
		WithPrompter(clip.StdinPrompter())

	fetch := p.Sub("fetch")
	fetch.Add(clip.Spec{Name: "url", Kind: clip.KindString, Required: true, Help: "source url"})
	fetch.Add(clip.Spec{Name: "timeout", Default: 30, Help: "seconds"})
	fetch.Add(clip.Spec{Name: "retries", Kind: clip.KindInt, Default: 3,
		Validators: []clip.Validator{clip.Custom(func(v any) error {
			if v.(int) < 0 {
				return errors.New("retries must not be negative")
			}
			return nil
		})}})

	out := p.Parse() // exits with status 2 when resolution fails

	fmt.Printf("input=%s mode=%s count=%d verbose=%v tags=%v\n",
		out.GetString("input"), out.GetString("mode"),
		out.GetInt("count"), out.GetBool("verbose"), out.GetStrings("tags"))
	if out.Command == "fetch" {
		fmt.Printf("fetch url=%s timeout=%d retries=%d\n",
			out.GetString("url"), out.GetInt("timeout"), out.GetInt("retries"))
	}
}
