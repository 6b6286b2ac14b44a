// Package validation gatekeeps generated level definitions.
//
// Checks are pattern matches over the candidate's literal text rather than a
// parse of it. Text inside comments or strings counts like any other text, and
// a syntactically broken definition passes as long as it has the right shape.
// Final parsing belongs to the game that loads the level.
package validation

import (
	"log/slog"

	"github.com/ahrav/levelforge/internal/domain"
)

// Validate applies the rule battery to c and returns the verdict of the first
// failing rule, or an accepting verdict when every rule passes.
func Validate(c domain.Candidate) domain.Verdict {
	text := string(c)
	for _, r := range rules {
		if reason, ok := r.check(text); !ok {
			return domain.Reject(r.name, reason)
		}
	}
	return domain.Accept()
}

// Validator wraps Validate with structured logging of rejections.
type Validator struct {
	logger *slog.Logger
}

// New creates a Validator. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger.With("component", "validator")}
}

// Validate checks c and logs the reason when it is rejected.
func (v *Validator) Validate(c domain.Candidate) domain.Verdict {
	verdict := Validate(c)
	if !verdict.Accepted {
		v.logger.Warn("candidate rejected",
			"rule", verdict.Rule,
			"reason", verdict.Reason,
			"candidate_length", len(c))
	}
	return verdict
}

// Report summarises the measurable features of a candidate.
type Report struct {
	Verdict           domain.Verdict    `json:"verdict"`
	MissingElement    string            `json:"missing_element,omitempty"`
	GateTypes         []domain.GateType `json:"gate_types"`
	XPositions        []string          `json:"x_positions"`
	TruthTableEntries int               `json:"truth_table_entries"`
	TruthTableFound   bool              `json:"truth_table_found"`
}

// Inspect computes every measurement regardless of which rule fails first.
// The verdict in the report is identical to Validate(c).
func Inspect(c domain.Candidate) Report {
	text := string(c)
	n, found := truthTableEntries(text)
	return Report{
		Verdict:           Validate(c),
		MissingElement:    missingElement(text),
		GateTypes:         gateTypesPresent(text),
		XPositions:        distinctXPositions(text),
		TruthTableEntries: n,
		TruthTableFound:   found,
	}
}
