package pattern

// Findings lists the annotations reported against one source file.
type Findings struct {
	Label string // file path
	Items []Finding
}

// Finding is one annotation row.
type Finding struct {
	Kind     Kind
	Level    string // display heading for the level, e.g. "Failure"
	Location string // "line" or "line:col"
	Message  string
	Title    string
	Source   string // label of the format that reported it
}

func (f *Findings) Type() PatternType { return PatternTypeFindings }
