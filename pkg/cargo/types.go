// Package cargo parses the line-delimited JSON diagnostics printed by
// `cargo build --message-format=json` and friends.
package cargo

// reasonCompilerMessage marks records that carry a compiler diagnostic.
const reasonCompilerMessage = "compiler-message"

// record is one line of cargo output. Records with other reasons
// (compiler-artifact, build-script-executed, build-finished...) are ignored.
type record struct {
	Reason  string   `json:"reason"`
	Message *message `json:"message"`
}

// message is a diagnostic node. Children are sub-diagnostics such as notes
// and help entries attached to the primary error or warning.
type message struct {
	Message  *string   `json:"message"`
	Level    *string   `json:"level"`
	Rendered *string   `json:"rendered"`
	Code     *code     `json:"code"`
	Spans    []span    `json:"spans"`
	Children []message `json:"children"`
}

// code identifies the diagnostic, e.g. E0308, with an optional long
// explanation.
type code struct {
	Code        *string `json:"code"`
	Explanation *string `json:"explanation"`
}

// span is a source location referenced by a diagnostic.
type span struct {
	FileName             *string `json:"file_name"`
	LineStart            *int    `json:"line_start"`
	LineEnd              *int    `json:"line_end"`
	ColumnStart          *int    `json:"column_start"`
	ColumnEnd            *int    `json:"column_end"`
	IsPrimary            bool    `json:"is_primary"`
	Label                *string `json:"label"`
	SuggestedReplacement *string `json:"suggested_replacement"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
