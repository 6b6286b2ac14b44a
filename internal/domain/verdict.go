package domain

// Rule names a structural check applied to a candidate definition.
type Rule string

// Rules in evaluation order.
const (
	RuleRequiredElements  Rule = "required_elements"
	RuleGateDiversity     Rule = "gate_diversity"
	RuleHorizontalSpacing Rule = "horizontal_spacing"
	RuleTruthTable        Rule = "truth_table"
)

// Verdict is the outcome of validating a candidate.
// A rejected verdict names the first rule that failed and a user-facing reason.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Rule     Rule   `json:"rule,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Accept returns a passing verdict.
func Accept() Verdict { return Verdict{Accepted: true} }

// Reject returns a failing verdict for rule with the given reason.
func Reject(rule Rule, reason string) Verdict {
	return Verdict{Rule: rule, Reason: reason}
}

// String renders the verdict for logs and CLI output.
func (v Verdict) String() string {
	if v.Accepted {
		return "accepted"
	}
	return "rejected (" + string(v.Rule) + "): " + v.Reason
}
