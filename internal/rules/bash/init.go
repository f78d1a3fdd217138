package bash

import "github.com/wharflab/bashrs/internal/rules"

func init() {
	rules.Register(NewBASH001Rule())
	rules.Register(NewBASH003Rule())
	rules.Register(NewBASH004Rule())
	rules.Register(NewBASH009Rule())
	rules.Register(NewBASH010Rule())
}
