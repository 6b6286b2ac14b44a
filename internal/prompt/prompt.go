// Package prompt renders the natural-language request sent to the level model.
package prompt

import (
	"strings"
	"text/template"

	"github.com/ahrav/levelforge/internal/domain"
)

// MinGateTypes is the number of distinct gate types every level must use.
// The validator enforces the same floor.
const MinGateTypes = 4

var tmpl = template.Must(template.New("level").Parse(levelTemplate))

type templateData struct {
	LevelNumber  int
	PriorLevels  string
	MinGateTypes int
	Namespace    string
	Gates        []string
}

// Build renders the generation prompt for levelNumber, citing priorLevels as
// a comma-separated list. It never fails and performs no range checks on its
// inputs; the number is only substituted into text.
func Build(levelNumber int, priorLevels []string) domain.Prompt {
	vocab := domain.GateVocabulary()
	gates := make([]string, len(vocab))
	for i, g := range vocab {
		gates[i] = g.Qualified()
	}

	data := templateData{
		LevelNumber:  levelNumber,
		PriorLevels:  strings.Join(priorLevels, ", "),
		MinGateTypes: MinGateTypes,
		Namespace:    domain.GateNamespace,
		Gates:        gates,
	}

	var b strings.Builder
	// Execution over a strings.Builder with a fixed, pre-parsed template cannot fail.
	_ = tmpl.Execute(&b, data)

	return domain.NewPrompt(levelNumber, b.String())
}

// FromRequest renders the prompt for a generation request.
func FromRequest(req domain.GenerationRequest) domain.Prompt {
	return Build(req.LevelNumber, req.PriorLevels)
}
