package matrix

// State is one state a character can take
type State interface {
	ID() int
	Name() string
}

// Character is anything that exposes an ordered list of states
type Character interface {
	States() []State
}

// StateDef is a concrete character state
type StateDef struct {
	Num   int
	Label string
}

func (s StateDef) ID() int      { return s.Num }
func (s StateDef) Name() string { return s.Label }

// Column is a character of the matrix: one column of cells
type Column struct {
	Index     int
	Label     string
	StateDefs []StateDef
}

// States returns the column's states in definition order
func (c *Column) States() []State {
	if c == nil {
		return nil
	}
	states := make([]State, len(c.StateDefs))
	for i, s := range c.StateDefs {
		states[i] = s
	}
	return states
}

// Matrix is a taxa by characters grid
type Matrix struct {
	Title   string
	Taxa    []string
	Columns []*Column
}

// Column returns the character at index i, or nil when out of range
func (m *Matrix) Column(i int) *Column {
	if i < 0 || i >= len(m.Columns) {
		return nil
	}
	return m.Columns[i]
}

// SampleMatrix returns a small matrix for the browser to open when no
// other source is given
func SampleMatrix() *Matrix {
	return &Matrix{
		Title: "Carnivora (sample)",
		Taxa:  []string{"Canis lupus", "Felis catus", "Ursus arctos", "Mustela nivalis"},
		Columns: []*Column{
			{Index: 0, Label: "Carnassial notch", StateDefs: []StateDef{
				{Num: 1, Label: "absent"}, {Num: 2, Label: "present"},
			}},
			{Index: 1, Label: "Claw retraction", StateDefs: []StateDef{
				{Num: 1, Label: "none"}, {Num: 2, Label: "partial"}, {Num: 3, Label: "full"},
			}},
			{Index: 2, Label: "Plantigrade stance", StateDefs: []StateDef{
				{Num: 1, Label: "digitigrade"}, {Num: 2, Label: "plantigrade"},
			}},
			{Index: 3, Label: "Baculum", StateDefs: nil},
		},
	}
}
