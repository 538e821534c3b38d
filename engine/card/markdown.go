package card

import (
	"fmt"
	"strings"

	"github.com/taskwire/taskwire/engine/task"
)

// Markdown renders the task as a Markdown document following the scrum
// template used for issue descriptions:
//
//	# Title
//
//	**Özet:** ...
//	**Problem:** ...
//	**Muhtemel Çözüm:**
//	1. **Adım Başlığı:**
//	   - Madde
//	**Çözümün Avantajları:**
//	- Avantaj
//
// Without a description the flat checklist is rendered with each step detail
// as its single sub-item, and the advantages block is omitted.
func Markdown(t *task.Task, desc *task.Description) string {
	summary, problem := t.Summary, t.Problem
	if desc != nil {
		summary, problem = desc.Summary, desc.Problem
	}

	lines := []string{"# " + t.Title, ""}
	lines = append(lines, "**Özet:** "+summary, "")
	lines = append(lines, "**Problem:** "+problem, "")

	lines = append(lines, "**Muhtemel Çözüm:**")
	if desc != nil && len(desc.SolutionSteps) > 0 {
		for i, section := range desc.SolutionSteps {
			lines = append(lines, fmt.Sprintf("%d. **%s:**", i+1, section.Title))
			for _, item := range section.Items {
				lines = append(lines, "   - "+item)
			}
		}
	} else {
		for i, step := range t.AnalysisSteps {
			lines = append(lines, fmt.Sprintf("%d. **%s:**", i+1, step.Title))
			lines = append(lines, "   - "+step.Detail)
		}
	}

	if desc != nil && len(desc.Advantages) > 0 {
		lines = append(lines, "")
		lines = append(lines, "**Çözümün Avantajları:**")
		for _, adv := range desc.Advantages {
			lines = append(lines, "- "+adv)
		}
	}

	return strings.Join(lines, "\n")
}
