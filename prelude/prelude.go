package prelude

import (
	_ "embed"

	"github.com/deosjr/rusp/lisp"
)

//go:embed prelude.lisp
var prelude string

// Load defines the prelude functions in the global environment of l.
func Load(l lisp.Lisp) error {
	return l.Load(prelude)
}
