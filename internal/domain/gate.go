package domain

// GateType is a logic-gate category symbol understood by the rendering app.
// Values match the GATE_TYPES constants exported by the game's levels/types.js.
type GateType string

const (
	GateInput    GateType = "INPUT"
	GateOutput   GateType = "OUTPUT"
	GateInverter GateType = "INVERTER"
	GateAnd      GateType = "AND"
	GateOr       GateType = "OR"
	GateNand     GateType = "NAND"
	GateNor      GateType = "NOR"
	GateXor      GateType = "XOR"
	GateXnor     GateType = "XNOR"
)

// GateNamespace is the identifier generated levels import gate constants from.
const GateNamespace = "GATE_TYPES"

// gateVocabulary is the fixed set of gate types a generated circuit draws from.
// INVERTER exists in the game but is not part of the generation vocabulary.
var gateVocabulary = [...]GateType{
	GateInput,
	GateOutput,
	GateAnd,
	GateOr,
	GateNand,
	GateNor,
	GateXor,
	GateXnor,
}

// GateVocabulary returns the eight gate types used for generation, in canonical order.
// The returned slice is a fresh copy.
func GateVocabulary() []GateType {
	out := make([]GateType, len(gateVocabulary))
	copy(out, gateVocabulary[:])
	return out
}

// Qualified returns the namespaced symbol as it appears in level source,
// e.g. "GATE_TYPES.NAND".
func (g GateType) Qualified() string { return GateNamespace + "." + string(g) }
