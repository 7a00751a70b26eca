package models

// DocumentAnalysis is the structured result of an AI document review. When
// the model response cannot be parsed, Error carries the diagnostic and the
// remaining fields are empty; the value still renders inline like a normal
// analysis.
type DocumentAnalysis struct {
	Summary     string `json:"summary"`
	Parties     string `json:"parties"`
	Dates       string `json:"dates"`
	Clauses     string `json:"clauses"`
	Risks       string `json:"risks"`
	Suggestions string `json:"suggestions"`
	Error       string `json:"error,omitempty"`
}

// AnalysisError builds an analysis-shaped error value.
func AnalysisError(diagnostic string) DocumentAnalysis {
	return DocumentAnalysis{Error: diagnostic}
}

// ChatMessage is one turn of the strategic-advice dialogue.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
