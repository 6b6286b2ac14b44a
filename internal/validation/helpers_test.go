package validation

import "strings"

// validLevel satisfies every rule with exactly four gate symbols, five distinct
// x positions and four truth-table entries.
const validLevel = `import { GATE_TYPES } from './types';

export const level9 = {
  id: 'level9',
  title: 'Gate Gauntlet',
  description: 'Route two inputs through NAND and NOR stages before combining them.',
  difficulty: 5,
  availableGates: [GATE_TYPES.AND, GATE_TYPES.OR, GATE_TYPES.NAND, GATE_TYPES.NOR],
  initialNodes: [
    { id: 'input1', type: 'input', position: { x: 100, y: 100 }, data: { value: 0 } },
    { id: 'input2', type: 'input', position: { x: 100, y: 300 }, data: { value: 0 } },
    { id: 'nand1', type: 'nand', position: { x: 300, y: 100 }, data: { value: null } },
    { id: 'nor1', type: 'nor', position: { x: 500, y: 200 }, data: { value: null } },
    { id: 'or1', type: 'or', position: { x: 700, y: 200 }, data: { value: null } },
    { id: 'output', type: 'output', position: { x: 900, y: 200 }, data: { value: null } }
  ],
  expectedTruthTable: [
    { input1: 0, input2: 0, output: 1 },
    { input1: 0, input2: 1, output: 1 },
    { input1: 1, input2: 0, output: 1 },
    { input1: 1, input2: 1, output: 0 }
  ]
};`

// withReplacements applies old/new pairs to validLevel in order.
func withReplacements(pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(validLevel)
}
