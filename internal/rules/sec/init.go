package sec

import "github.com/wharflab/bashrs/internal/rules"

func init() {
	rules.Register(NewSEC014Rule())
	rules.Register(NewSEC015Rule())
	rules.Register(NewSEC016Rule())
}
