package lang

import "github.com/insee-trevas/vtlengine/env"

// Run parses src as a sequence of statements and executes them one at a
// time against e: each statement is built only after the previous one
// has been bound, so a later statement's identifier references resolve
// against the concrete type the environment already holds
// (expr.Identifier's contract). Returns the name of the last statement
// executed, for callers that want to look the final result back up in e.
func Run(src string, e *env.Environment) (string, error) {
	stmts, err := ParseProgram(src)
	if err != nil {
		return "", err
	}
	var last string
	for _, stmt := range stmts {
		built, err := BuildStatement(stmt, e)
		if err != nil {
			return "", err
		}
		if err := env.Execute(e, built); err != nil {
			return "", err
		}
		last = stmt.Name
	}
	return last, nil
}
