package task

// SolutionStep is a single checklist entry rendered under the solution
// section of a card.
type SolutionStep struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// StepSection groups several bullet items under one numbered heading. It is
// the rich counterpart of SolutionStep used by long-form descriptions.
type StepSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Description carries the long-form narrative of a task. When present it
// replaces the summary block and the flat solution checklist in the rendered
// card.
type Description struct {
	Summary       string        `json:"summary"`
	Problem       string        `json:"problem"`
	SolutionSteps []StepSection `json:"solution_steps"`
	Advantages    []string      `json:"advantages,omitempty"`
}

// Task is the fully resolved record handed to the card renderer. It is built
// once per submission and never mutated afterwards.
type Task struct {
	Title              string         `json:"title"`
	Summary            string         `json:"summary"`
	Problem            string         `json:"problem"`
	EstimatedDuration  string         `json:"estimated_duration"`
	Domain             string         `json:"domain"`
	DomainLabel        string         `json:"domain_label"`
	Owner              string         `json:"task_owner,omitempty"`
	Participants       []string       `json:"participants,omitempty"`
	AnalysisSteps      []SolutionStep `json:"analysis_steps"`
	AcceptanceCriteria []string       `json:"acceptance_criteria"`
}
