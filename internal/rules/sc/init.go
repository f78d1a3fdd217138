package sc

import "github.com/wharflab/bashrs/internal/rules"

// init self-registers every SC rule in this package with the default
// registry, mirroring the teacher's per-family registration pattern
// (internal/rules/hadolint's init.go).
func init() {
	rules.Register(NewSC1008Rule())
	rules.Register(NewSC1083Rule())
	rules.Register(NewSC1091Rule())
	rules.Register(NewSC1106Rule())
	rules.Register(NewSC1140Rule())
	rules.Register(NewSC2001Rule())
	rules.Register(NewSC2009Rule())
	rules.Register(NewSC2026Rule())
	rules.Register(NewSC2031Rule())
	rules.Register(NewSC2032Rule())
	rules.Register(NewSC2033Rule())
	rules.Register(NewSC2036Rule())
	rules.Register(NewSC2039Rule())
	rules.Register(NewSC2041Rule())
	rules.Register(NewSC2049Rule())
	rules.Register(NewSC2058Rule())
	rules.Register(NewSC2059Rule())
	rules.Register(NewSC2046Rule())
	rules.Register(NewSC2048Rule())
	rules.Register(NewSC2064Rule())
	rules.Register(NewSC2068Rule())
	rules.Register(NewSC2076Rule())
	rules.Register(NewSC2086Rule())
	rules.Register(NewSC2095Rule())
	rules.Register(NewSC2096Rule())
	rules.Register(NewSC2098Rule())
	rules.Register(NewSC2102Rule())
	rules.Register(NewSC2119Rule())
	rules.Register(NewSC2120Rule())
	rules.Register(NewSC2129Rule())
	rules.Register(NewSC2133Rule())
	rules.Register(NewSC2135Rule())
	rules.Register(NewSC2138Rule())
	rules.Register(NewSC2154Rule())
	rules.Register(NewSC2170Rule())
	rules.Register(NewSC2171Rule())
	rules.Register(NewSC2194Rule())
	rules.Register(NewSC2198Rule())
	rules.Register(NewSC2200Rule())
	rules.Register(NewSC2201Rule())
	rules.Register(NewSC2317Rule())
}
