// Package manifest renders a typed program's capability manifest to its
// canonical text form, suitable for diffing or embedding in a deployment
// artifact.
package manifest

import (
	"strings"

	"github.com/axiom-lang/axiom/ast"
)

// Render produces the manifest text for typed: a header line followed by
// one "requires=<cap>" line per required capability, in the manifest's
// already-sorted order.
func Render(typed *ast.TypedProgram) string {
	var b strings.Builder
	b.WriteString("capability_manifest_v1\n")
	for _, cap := range typed.Manifest.RequiredCaps {
		b.WriteString("requires=" + cap + "\n")
	}
	return b.String()
}
