package main

import (
	"fmt"

	"github.com/clipd/clip"
)

func main() {
	// QuickParse for one-off scripts: kinds are inferred from names,
	// env fallback comes for free (SIMPLE_COUNT, SIMPLE_VERBOSE, ...)
	out := clip.QuickParse("simple",
		clip.Spec{Name: "input", Kind: clip.KindString, Required: true},
		clip.Spec{Name: "count", Default: 10},
		clip.Spec{Name: "verbose"},
	)
	fmt.Printf("%s x%d verbose=%v\n",
		out.GetString("input"), out.GetInt("count"), out.GetBool("verbose"))
}
