package task

import (
	"encoding/json"
	"errors"
	"strings"
)

// Input is the raw submission shape accepted from tool callers. Field names
// follow the wire contract of the send tool. SolutionSections and Advantages
// are the flattened form of the rich description; Description is the full
// document shape used by file submissions.
type Input struct {
	Title              string         `json:"title"`
	Summary            string         `json:"summary"`
	Problem            string         `json:"problem"`
	EstimatedDuration  string         `json:"estimated_duration"`
	Domain             string         `json:"domain,omitempty"`
	TaskOwner          string         `json:"task_owner,omitempty"`
	Participants       StringList     `json:"participants,omitempty"`
	AnalysisSteps      []SolutionStep `json:"analysis_steps,omitempty"`
	AcceptanceCriteria []string       `json:"acceptance_criteria,omitempty"`
	SolutionSections   []StepSection  `json:"solution_sections,omitempty"`
	Advantages         []string       `json:"advantages,omitempty"`
	Description        *Description   `json:"description,omitempty"`
}

// ResolveDescription returns the rich description to render with, or nil when
// the input carries none. An explicit description document wins over the
// flattened fields.
func (in *Input) ResolveDescription() *Description {
	if in.Description != nil {
		return in.Description
	}
	if len(in.SolutionSections) == 0 && len(in.Advantages) == 0 {
		return nil
	}
	return &Description{
		Summary:       strings.TrimSpace(in.Summary),
		Problem:       strings.TrimSpace(in.Problem),
		SolutionSteps: in.SolutionSections,
		Advantages:    in.Advantages,
	}
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return errors.New("expected a string or a list of strings")
	}
	if strings.TrimSpace(joined) == "" {
		*l = nil
		return nil
	}
	*l = strings.Split(joined, ",")
	return nil
}
