package make

import "github.com/wharflab/bashrs/internal/rules"

func init() {
	rules.Register(NewMAKE004Rule())
	rules.Register(NewMAKE007Rule())
	rules.Register(NewMAKE016Rule())
	rules.Register(NewMAKE017Rule())
	rules.Register(NewMAKE019Rule())
	rules.Register(NewMAKE020Rule())
}
