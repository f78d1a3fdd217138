package docker

import "github.com/wharflab/bashrs/internal/rules"

func init() {
	rules.Register(NewDOCKER008Rule())
	rules.Register(NewDOCKER009Rule())
	rules.Register(NewDOCKER010Rule())
	rules.Register(NewDOCKER011Rule())
	rules.Register(NewDOCKER012Rule())
	rules.Register(NewDOCKER013Rule())
}
