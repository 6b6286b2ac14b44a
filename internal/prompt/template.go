package prompt

// levelTemplate over-specifies the expected answer, including a complete
// worked example, because the model's output format is not under our control.
// Level numbers appear in the heading, the export name and the level id.
const levelTemplate = `Generate a complex level configuration for a logic gate game. Level {{.LevelNumber}}.
Previous levels: {{.PriorLevels}}.
Create a challenging level that requires at least {{.MinGateTypes}} different types of gates and has a non-trivial solution.
The level should be more complex than previous levels and require creative thinking.

Output a JavaScript file that exports a level configuration object. The file should:
1. Import {{.Namespace}} from './types'
2. Export a level configuration object
3. Include at least {{.MinGateTypes}} different types of gates (e.g., NAND, AND, OR, XOR)
4. Have a complex truth table that requires multiple gate combinations
5. Position nodes in a way that makes the circuit clear but challenging
6. Include intermediate gates that must be connected in a specific order

Example format:
import { {{.Namespace}} } from './types';

export const level{{.LevelNumber}} = {
    id: 'level{{.LevelNumber}}',
    title: 'Complex Gate Challenge',
    description: 'Create a circuit that implements a complex logic function using multiple gates. You must connect the gates in the correct order to achieve the desired output.',
    difficulty: 5,
    availableGates: [
{{- range $i, $g := .Gates}}{{if $i}},{{end}}
        {{$g}}
{{- end}}
    ],
    initialNodes: [
        {
            id: 'input1',
            type: {{.Namespace}}.INPUT,
            position: { x: 100, y: 100 },
            data: { value: 0 }
        },
        {
            id: 'input2',
            type: {{.Namespace}}.INPUT,
            position: { x: 100, y: 300 },
            data: { value: 0 }
        },
        {
            id: 'nand1',
            type: {{.Namespace}}.NAND,
            position: { x: 300, y: 100 },
            data: { value: null }
        },
        {
            id: 'and1',
            type: {{.Namespace}}.AND,
            position: { x: 500, y: 200 },
            data: { value: null }
        },
        {
            id: 'or1',
            type: {{.Namespace}}.OR,
            position: { x: 700, y: 200 },
            data: { value: null }
        },
        {
            id: 'output',
            type: {{.Namespace}}.OUTPUT,
            position: { x: 900, y: 200 },
            data: { value: null }
        }
    ],
    expectedTruthTable: [
        { input1: 0, input2: 0, output: 1 },
        { input1: 0, input2: 1, output: 1 },
        { input1: 1, input2: 0, output: 1 },
        { input1: 1, input2: 1, output: 0 }
    ]
};

Make sure to:
1. Use proper JavaScript syntax (not JSON)
2. Include the import statement
3. Use {{.Namespace}} constants
4. Create a complex circuit that requires multiple gate combinations
5. Position nodes in a way that makes the circuit clear but challenging
6. Include a detailed description of the challenge
7. Space out the nodes horizontally (x: 100, 300, 500, 700, 900) and vertically (y: 100, 200, 300)
8. Create a non-trivial truth table that requires careful gate connections
`
