package det

import "github.com/wharflab/bashrs/internal/rules"

func init() {
	rules.Register(NewDET001Rule())
	rules.Register(NewDET002Rule())
	rules.Register(NewDET003Rule())
}
