package report

import (
	"strings"

	"github.com/bonsono/sonolog/pkg/domain"
)

// severityOf scores the analysis and buckets the total. The additive
// formula and its thresholds are a product contract; do not rebalance
// without sign-off.
func severityOf(a analysis) (domain.Severity, int) {
	if !a.hasInsomnia {
		return domain.SeverityNormal, 0
	}

	score := 0

	if strings.Contains(a.duration, "Mais de 3 meses") {
		score += 2
	} else {
		score++
	}

	switch {
	case len(a.types) > 2:
		score += 2
	case len(a.types) > 0:
		score++
	}

	if strings.Contains(a.impact, "Com prejuízos") {
		score += 2
	}

	score += len(a.comorbidities)

	switch {
	case strings.Contains(a.sleepHygiene, "completamente"):
		score += 2
	case a.sleepHygiene != "":
		score++
	}

	switch {
	case score >= 6:
		return domain.SeveritySevere, score
	case score >= 3:
		return domain.SeverityModerate, score
	default:
		// The duration contribution guarantees score >= 1 here, so
		// "normal" is unreachable once hasInsomnia holds.
		return domain.SeverityMild, score
	}
}
