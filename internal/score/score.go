// Package score implements spec §4.8's weighted scoring: each rule
// category contributes a fixed weight to a per-artifact score, a
// "Popperian gateway" multiplier punishes artifacts that fail outright,
// and a project score is the arithmetic mean of its artifacts. This
// package is pure (no CLI, no I/O) per SPEC_FULL.md §C "corpus/audit
// scoring kept pure" — cmd/bashrs is the only caller that prints it.
package score

import (
	"github.com/wharflab/bashrs/internal/rules"
	"github.com/wharflab/bashrs/internal/violation"
)

// categoryWeight is spec §4.8's fixed weight table: "POSIX compliance
// (20), security (20), idempotency (15), determinism (15), quoting
// (10), others per registry". The registry has no dedicated POSIX or
// quoting Category (see quotingCodes below for how quoting is carved
// out of CategoryShellCheck); the remaining 20 points are split evenly
// across CategoryBash, CategoryMake, and CategoryDocker.
var categoryWeight = map[rules.Category]float64{
	rules.CategoryShellCheck:  20, // "POSIX compliance", minus quoting codes carved out below
	rules.CategorySecurity:    20,
	rules.CategoryIdempotency: 15,
	rules.CategoryDeterminism: 15,
	rules.CategoryBash:        20.0 / 3,
	rules.CategoryMake:        20.0 / 3,
	rules.CategoryDocker:      20.0 / 3,
}

const quotingWeight = 10.0

// quotingCodes are the ShellCheck codes that specifically diagnose
// missing/incorrect quoting (spec §4.8 names "quoting" as its own
// weighted slice, but internal/rules has no separate Category for it —
// these are the SC codes whose Description talks about word-splitting/
// globbing from an unquoted expansion). Decided as an Open Question
// resolution; see DESIGN.md.
var quotingCodes = map[string]bool{
	"SC2086": true, // double quote to prevent globbing/word splitting
	"SC2046": true, // quote to prevent word splitting on command substitution
	"SC2068": true, // double quote array expansions
	"SC2048": true, // use "$@" to avoid word splitting
}

// Grade is a letter grade band (spec §4.8: "A+ >= 95, A >= 85, B >= 70,
// C >= 50, F < 50").
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeF     Grade = "F"
)

func gradeFor(score float64) Grade {
	switch {
	case score >= 95:
		return GradeAPlus
	case score >= 85:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 50:
		return GradeC
	default:
		return GradeF
	}
}

// popperianGateway halves-then-some the score of an artifact whose raw
// score fell below 60 (spec §4.8 "Popperian gateway": "if raw score <
// 60, multiply by 0.4 (capping failing artifacts)", spec §9: "reflecting
// the belief that a partial failure indicates structural unreliability"
// — Karl Popper's falsifiability: one failing observation falsifies the
// "this script is reliable" hypothesis regardless of how many other
// checks passed).
func popperianGateway(raw float64) float64 {
	if raw < 60 {
		return raw * 0.4
	}
	return raw
}

// ArtifactReport is one file's score.
type ArtifactReport struct {
	Path            string
	RawScore        float64
	Score           float64
	Grade           Grade
	CategoryScores  map[rules.Category]float64
	ViolationCounts map[rules.Category]int
}

// ProjectReport aggregates every artifact's score (spec §4.8: "Project
// score = arithmetic mean of artifact scores").
type ProjectReport struct {
	Artifacts []ArtifactReport
	Score     float64
	Grade     Grade
}

// ScoreArtifact computes path's weighted score from the violations found
// in it. registry resolves each violation's RuleCode back to the
// rules.Category it belongs to, so an unknown/unregistered code (e.g.
// from a future rule family this package hasn't been updated for)
// contributes to neither the numerator nor denominator of its category
// rather than panicking.
func ScoreArtifact(path string, violations []violation.Violation, registry *rules.Registry) ArtifactReport {
	categoryTotal := map[rules.Category]int{}
	categoryFailed := map[rules.Category]int{}
	quotingTotal := 0
	quotingFailed := 0

	for _, rule := range registry.All() {
		cat := rule.Metadata().Category
		if quotingCodes[rule.Metadata().Code] {
			quotingTotal++
			continue
		}
		categoryTotal[cat]++
	}

	violationCounts := map[rules.Category]int{}
	seenCodes := map[string]bool{}
	for _, v := range violations {
		seenCodes[v.RuleCode] = true
	}
	for code := range seenCodes {
		rule, ok := registry.Get(code)
		if !ok {
			continue
		}
		cat := rule.Metadata().Category
		violationCounts[cat]++
		if quotingCodes[code] {
			quotingFailed++
			continue
		}
		categoryFailed[cat]++
	}

	categoryScores := map[rules.Category]float64{}
	var weightedSum, weightTotal float64

	for cat, weight := range categoryWeight {
		total := categoryTotal[cat]
		passFraction := 1.0
		if total > 0 {
			passFraction = float64(total-categoryFailed[cat]) / float64(total)
		}
		categoryScores[cat] = passFraction * 100
		weightedSum += weight * passFraction
		weightTotal += weight
	}

	if quotingTotal > 0 {
		passFraction := float64(quotingTotal-quotingFailed) / float64(quotingTotal)
		weightedSum += quotingWeight * passFraction
		weightTotal += quotingWeight
	}

	raw := 100.0
	if weightTotal > 0 {
		raw = (weightedSum / weightTotal) * 100
	}

	final := popperianGateway(raw)
	return ArtifactReport{
		Path:            path,
		RawScore:        raw,
		Score:           final,
		Grade:           gradeFor(final),
		CategoryScores:  categoryScores,
		ViolationCounts: violationCounts,
	}
}

// ScoreProject averages per-artifact scores (spec §4.8).
func ScoreProject(artifacts []ArtifactReport) ProjectReport {
	if len(artifacts) == 0 {
		return ProjectReport{Grade: GradeAPlus, Score: 100}
	}
	var sum float64
	for _, a := range artifacts {
		sum += a.Score
	}
	mean := sum / float64(len(artifacts))
	return ProjectReport{
		Artifacts: artifacts,
		Score:     mean,
		Grade:     gradeFor(mean),
	}
}
