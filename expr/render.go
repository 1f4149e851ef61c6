package expr

import (
	"fmt"
	"strings"

	"github.com/insee-trevas/vtlengine/value"
)

// render renders an expression back to a literal-ish source form, used
// only to build the diagnostic message for substr's arity error
// ("too many args (N) for: substr(<literal form>)").
func render(e Expr) string {
	switch n := e.(type) {
	case *Constant:
		return renderValue(n.val)
	case *Identifier:
		return n.Name
	case *Column:
		return n.Name
	default:
		return "<expr>"
	}
}

func renderValue(v value.Value) string {
	if v.IsNull() {
		return "null"
	}
	switch v.Type {
	case value.String:
		return fmt.Sprintf("%q", v.AsString())
	default:
		return v.String()
	}
}

func renderCall(name string, args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = render(a)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ","))
}
