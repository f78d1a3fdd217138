package idem

import "github.com/wharflab/bashrs/internal/rules"

func init() {
	rules.Register(NewIDEM001Rule())
	rules.Register(NewIDEM002Rule())
	rules.Register(NewIDEM003Rule())
	rules.Register(NewIDEM004Rule())
}
