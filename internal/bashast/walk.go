package bashast

// Walk visits every statement reachable from stmts, depth-first, calling
// visit(s) for each. Returning false from visit prunes that node's
// children. This mirrors the shape of mvdan.cc/sh/v3/syntax.Walk that
// internal/bashparser builds on, but operates over our own node types so
// rule code never imports mvdan.
func Walk(stmts []Stmt, visit func(Stmt) bool) {
	for _, s := range stmts {
		if !visit(s) {
			continue
		}
		walkChildren(s, visit)
	}
}

func walkChildren(s Stmt, visit func(Stmt) bool) {
	switch n := s.(type) {
	case *Pipeline:
		Walk(n.Stages, visit)
	case *AndList:
		Walk([]Stmt{n.Left, n.Right}, visit)
	case *OrList:
		Walk([]Stmt{n.Left, n.Right}, visit)
	case *BraceGroup:
		Walk(n.Body, visit)
	case *Subshell:
		Walk(n.Body, visit)
	case *Negated:
		Walk([]Stmt{n.Body}, visit)
	case *Coproc:
		Walk([]Stmt{n.Body}, visit)
	case *Function:
		Walk(n.Body, visit)
	case *If:
		Walk([]Stmt{n.Cond}, visit)
		Walk(n.Then, visit)
		Walk(n.Else, visit)
	case *While:
		Walk([]Stmt{n.Cond}, visit)
		Walk(n.Body, visit)
	case *Until:
		Walk([]Stmt{n.Cond}, visit)
		Walk(n.Body, visit)
	case *For:
		Walk(n.Body, visit)
	case *ForCStyle:
		Walk(n.Body, visit)
	case *Case:
		for _, cl := range n.Clauses {
			Walk(cl.Body, visit)
		}
	case *Select:
		Walk(n.Body, visit)
	}
}

// CommandNames returns the command name of every Command node reachable
// from stmts, in source order — the same information the teacher's
// internal/shell.CommandNames extracts by walking mvdan's syntax.CallExpr
// nodes directly.
func CommandNames(stmts []Stmt) []string {
	var names []string
	Walk(stmts, func(s Stmt) bool {
		if c, ok := s.(*Command); ok && c.Name != "" {
			names = append(names, c.Name)
		}
		return true
	})
	return names
}
