package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwire/taskwire/engine/domain"
)

func TestDomainsCmd(t *testing.T) {
	t.Run("Should list every domain as JSON in catalog order", func(t *testing.T) {
		out := executeCommand(t, "domains", "--format", "json")

		var summaries []domain.Summary
		require.NoError(t, json.Unmarshal([]byte(out), &summaries))
		keys := make([]string, 0, len(summaries))
		for _, s := range summaries {
			keys = append(keys, s.Key)
		}
		assert.Equal(t, []string{"backend", "frontend", "devops", "mobile", "data", "business", "general"}, keys)
		assert.Equal(t, "DevOps / Altyapı", summaries[2].Label)
		for _, s := range summaries {
			assert.NotEmpty(t, s.StepTitles, "domain %s", s.Key)
			assert.Positive(t, s.CriteriaCount, "domain %s", s.Key)
		}
	})

	t.Run("Should render the text table by default", func(t *testing.T) {
		out := executeCommand(t, "domains")

		assert.Contains(t, out, "KEY")
		assert.Contains(t, out, "backend")
		assert.Contains(t, out, "Genel")
	})

	t.Run("Should reject an unknown format", func(t *testing.T) {
		_, err := executeCommandErr(t, "domains", "--format", "xml")

		require.Error(t, err)
		assert.ErrorContains(t, err, "unsupported format: xml")
	})
}

func TestRenderDomainTable(t *testing.T) {
	t.Run("Should render one aligned row per domain", func(t *testing.T) {
		table := renderDomainTable(domain.Default().List(), false)

		lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
		require.Len(t, lines, 8)
		assert.True(t, strings.HasPrefix(lines[0], "KEY"))
		assert.Contains(t, lines[0], "LABEL")
		assert.Contains(t, lines[0], "CRITERIA")
		assert.Contains(t, lines[0], "STEPS")
		assert.True(t, strings.HasPrefix(lines[1], "backend "))
		assert.Contains(t, lines[1], "Backend")
	})

	t.Run("Should pad keys to a common display width", func(t *testing.T) {
		table := renderDomainTable(domain.Default().List(), false)

		lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
		labelCol := strings.Index(lines[0], "LABEL")
		require.Positive(t, labelCol)
		for _, line := range lines[1:] {
			assert.Equal(t, byte(' '), line[labelCol-1], "row %q", line)
		}
	})
}
