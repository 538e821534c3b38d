package task

import (
	"fmt"
	"slices"
	"strings"

	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/engine/title"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options carry environment-derived fallbacks applied during normalization.
// Both values may be empty.
type Options struct {
	// Project is prepended to every normalized title, e.g. "Destek".
	Project string
	// DefaultOwner is used when the submission names no owner.
	DefaultOwner string
}

// Normalize validates a raw submission and resolves it into a Task using the
// given catalog. Unknown domain keys and empty required fields are rejected;
// the returned errors match ErrInvalidDomain and ErrEmptyField via errors.Is.
func Normalize(in *Input, catalog *domain.Catalog, opts Options) (*Task, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"summary", in.Summary},
		{"problem", in.Problem},
		{"estimated_duration", in.EstimatedDuration},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, &EmptyFieldError{Field: f.name}
		}
	}

	key := strings.TrimSpace(in.Domain)
	if key == "" {
		key = domain.GeneralKey
	}
	tpl, ok := catalog.Lookup(key)
	if !ok {
		return nil, &InvalidDomainError{Domain: key, Valid: catalog.Keys()}
	}

	owner, participants := normalizeAssignees(in.TaskOwner, in.Participants, opts.DefaultOwner)

	steps, err := resolveSteps(in.AnalysisSteps, tpl)
	if err != nil {
		return nil, err
	}

	return &Task{
		Title:              title.Normalize(in.Title, opts.Project, tpl.TitlePrefix),
		Summary:            strings.TrimSpace(in.Summary),
		Problem:            strings.TrimSpace(in.Problem),
		EstimatedDuration:  strings.TrimSpace(in.EstimatedDuration),
		Domain:             tpl.Key,
		DomainLabel:        tpl.Label,
		Owner:              owner,
		Participants:       participants,
		AnalysisSteps:      steps,
		AcceptanceCriteria: resolveCriteria(in.AcceptanceCriteria, tpl),
	}, nil
}

// normalizeAssignees produces the owner/participant pair. A comma-separated
// owner with no explicit participants is split so that the first name becomes
// the owner and the rest become participants. Names arriving through the
// owner field are title-cased with Turkish casing rules; explicit
// participants are only trimmed. The owner never appears in the participant
// list.
func normalizeAssignees(rawOwner string, rawParticipants []string, defaultOwner string) (string, []string) {
	owner := strings.TrimSpace(rawOwner)
	if owner == "" {
		owner = strings.TrimSpace(defaultOwner)
	}
	participants := cleanList(rawParticipants)

	caser := cases.Title(language.Turkish)
	if len(participants) == 0 && strings.Contains(owner, ",") {
		tokens := cleanList(strings.Split(owner, ","))
		owner = ""
		if len(tokens) > 0 {
			owner = caser.String(tokens[0])
			for _, tok := range tokens[1:] {
				participants = append(participants, caser.String(tok))
			}
		}
	} else if owner != "" {
		owner = caser.String(owner)
	}

	var out []string
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if p == owner {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return owner, out
}

// cleanList trims entries and drops the empty ones, preserving order.
func cleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// resolveSteps returns the caller-supplied checklist when non-empty,
// otherwise the domain defaults. Supplied steps are trimmed and rejected when
// a title or detail is empty.
func resolveSteps(supplied []SolutionStep, tpl domain.Template) ([]SolutionStep, error) {
	if len(supplied) > 0 {
		out := make([]SolutionStep, 0, len(supplied))
		for i, step := range supplied {
			step.Title = strings.TrimSpace(step.Title)
			step.Detail = strings.TrimSpace(step.Detail)
			if step.Title == "" {
				return nil, &EmptyFieldError{Field: fmt.Sprintf("analysis_steps[%d].title", i)}
			}
			if step.Detail == "" {
				return nil, &EmptyFieldError{Field: fmt.Sprintf("analysis_steps[%d].detail", i)}
			}
			out = append(out, step)
		}
		return out, nil
	}
	out := make([]SolutionStep, 0, len(tpl.AnalysisSteps))
	for _, step := range tpl.AnalysisSteps {
		out = append(out, SolutionStep{Title: step.Title, Detail: step.Detail})
	}
	return out, nil
}

// resolveCriteria returns the caller-supplied criteria unchanged when
// non-empty, otherwise a copy of the domain defaults.
func resolveCriteria(supplied []string, tpl domain.Template) []string {
	if len(supplied) > 0 {
		return supplied
	}
	return slices.Clone(tpl.AcceptanceCriteria)
}
