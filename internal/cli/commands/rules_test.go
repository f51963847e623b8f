package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svkit/internal/cli/testutil"
	"github.com/leapstack-labs/svkit/pkg/lint/rules"
)

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-name]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"verbose", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListAll(t *testing.T) {
	out, err := execute(t, NewRulesCommand())
	require.NoError(t, err)

	assert.Contains(t, out, "Lint Rules")
	for _, name := range rules.NewRegistry().Names() {
		assert.Contains(t, out, name)
	}
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := execute(t, NewRulesCommand(), "--format", "json")
	require.NoError(t, err)

	var listing RulesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, len(rules.All()), listing.Count)
	assert.Len(t, listing.Rules, listing.Count)
	for _, info := range listing.Rules {
		assert.NotEmpty(t, info.Description, info.Name)
		assert.NotEmpty(t, info.Severity, info.Name)
	}
}

func TestRulesCommand_ShowRule(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		out, err := execute(t, NewRulesCommand(), "package-filename")
		require.NoError(t, err)
		assert.Contains(t, out, "## package-filename")
		assert.Contains(t, out, "### Bad Example")
		assert.Contains(t, out, "optional_suffix")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, NewRulesCommand(), "package-filename", "--format", "json")
		require.NoError(t, err)

		var info RuleInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "package-filename", info.Name)
		assert.Equal(t, "warning", info.Severity)
		assert.Contains(t, info.Citation, "file-names")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := execute(t, NewRulesCommand(), "no-such-rule")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestRulesCommand_Completion(t *testing.T) {
	cmd := NewRulesCommand()
	names, _ := cmd.ValidArgsFunction(cmd, nil, "")
	assert.ElementsMatch(t, rules.NewRegistry().Names(), names)

	names, _ = cmd.ValidArgsFunction(cmd, []string{"void-cast"}, "")
	assert.Empty(t, names)
}

func TestListRules_TextVerbose(t *testing.T) {
	tr := testutil.NewTestRendererText()
	var infos []RuleInfo
	for _, def := range rules.All() {
		infos = append(infos, ruleInfo(def))
	}

	require.NoError(t, listRules(tr.Renderer, infos, true))
	assert.Contains(t, tr.Output(), "File Names")
	assert.Contains(t, tr.Output(), "Why This Matters")
}
