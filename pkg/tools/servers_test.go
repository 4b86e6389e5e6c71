//go:build !integration

package tools

import (
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsync/agentsync/pkg/artifact"
)

func testServerSet() *artifact.ServerSet {
	return &artifact.ServerSet{
		Servers: map[string]*artifact.ServerDef{
			"github": {
				Command: "npx",
				Args:    []string{"-y", "@modelcontextprotocol/server-github"},
				Env:     map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
				Extra:   map[string]any{},
			},
			"search": {
				URL:      "https://mcp.example.com/sse",
				Disabled: true,
				Extra:    map[string]any{"timeout": float64(30)},
			},
		},
	}
}

func TestStandardServerRoundTrip(t *testing.T) {
	adapter, err := Lookup("claudecode")
	require.NoError(t, err)

	set := testServerSet()
	content, err := adapter.Servers.FromCanonical(set, nil)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(content, &doc))
	servers, ok := doc["mcpServers"].(map[string]any)
	require.True(t, ok, "mcpServers block missing")
	assert.Len(t, servers, 2)

	github, ok := servers["github"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "npx", github["command"])
	assert.NotContains(t, github, "targets", "targets must never reach native files")

	back, err := adapter.Servers.ToCanonical(content)
	require.NoError(t, err)
	assert.Equal(t, set.Servers["github"], back.Servers["github"])
	assert.Equal(t, set.Servers["search"], back.Servers["search"])

	again, err := adapter.Servers.FromCanonical(back, content)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(again), "second render should be byte-identical")
}

func TestMergedSettingsPreserveUnrelatedKeys(t *testing.T) {
	adapter, err := Lookup("geminicli")
	require.NoError(t, err)

	existing := []byte(`{
  "mcpServers": {
    "stale": {"command": "old"}
  },
  "theme": "dark"
}`)
	content, err := adapter.Servers.FromCanonical(testServerSet(), existing)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(content, &doc))
	assert.Equal(t, "dark", doc["theme"], "unrelated settings must survive a rewrite")

	servers := doc["mcpServers"].(map[string]any)
	assert.NotContains(t, servers, "stale", "the owned block is replaced whole")
	assert.Contains(t, servers, "github")
	assert.False(t, adapter.Servers.Deletable(artifact.ScopeProject))
}

func TestCorruptExistingSettingsFails(t *testing.T) {
	adapter, err := Lookup("geminicli")
	require.NoError(t, err)

	_, err = adapter.Servers.FromCanonical(testServerSet(), []byte("{not json"))
	require.Error(t, err, "never overwrite a settings file that cannot be parsed")
}

func TestOpenCodeServerShape(t *testing.T) {
	adapter, err := Lookup("opencode")
	require.NoError(t, err)

	set := testServerSet()
	content, err := adapter.Servers.FromCanonical(set, nil)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(content, &doc))
	mcp := doc["mcp"].(map[string]any)

	github := mcp["github"].(map[string]any)
	assert.Equal(t, "local", github["type"])
	assert.Equal(t, []any{"npx", "-y", "@modelcontextprotocol/server-github"}, github["command"])
	env := github["environment"].(map[string]any)
	assert.Equal(t, "{env:GITHUB_TOKEN}", env["GITHUB_TOKEN"], "env placeholders use opencode syntax")

	search := mcp["search"].(map[string]any)
	assert.Equal(t, "remote", search["type"])
	assert.Equal(t, "https://mcp.example.com/sse", search["url"])
	assert.Equal(t, false, search["enabled"])

	back, err := adapter.Servers.ToCanonical(content)
	require.NoError(t, err)
	assert.Equal(t, set.Servers["github"], back.Servers["github"])
	assert.Equal(t, set.Servers["search"], back.Servers["search"])
}

func TestZedServerShape(t *testing.T) {
	adapter, err := Lookup("zed")
	require.NoError(t, err)

	set := &artifact.ServerSet{
		Servers: map[string]*artifact.ServerDef{
			"docs": {
				Command: "uvx",
				Args:    []string{"mcp-docs"},
				Env:     map[string]string{"TOKEN": "abc"},
				Extra:   map[string]any{},
			},
			"remote": {URL: "https://mcp.example.com", Extra: map[string]any{}},
		},
	}
	content, err := adapter.Servers.FromCanonical(set, nil)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(content, &doc))
	servers := doc["context_servers"].(map[string]any)

	docs := servers["docs"].(map[string]any)
	command := docs["command"].(map[string]any)
	assert.Equal(t, "uvx", command["path"])
	assert.Equal(t, []any{"mcp-docs"}, command["args"])

	remote := servers["remote"].(map[string]any)
	assert.Equal(t, "https://mcp.example.com", remote["url"])

	back, err := adapter.Servers.ToCanonical(content)
	require.NoError(t, err)
	// Disabled has no native representation in Zed settings.
	assert.Equal(t, set.Servers["docs"], back.Servers["docs"])
	assert.Equal(t, set.Servers["remote"], back.Servers["remote"])
}

func TestCodexServersTOMLMerge(t *testing.T) {
	adapter, err := Lookup("codexcli")
	require.NoError(t, err)

	assert.Equal(t, "", adapter.Servers.Location(artifact.ScopeProject), "codex servers are user-wide only")
	assert.NotEqual(t, "", adapter.Servers.Location(artifact.ScopeGlobal))
	assert.False(t, adapter.Servers.Deletable(artifact.ScopeGlobal))

	existing := []byte("model = \"o3\"\n\n[mcp_servers.stale]\ncommand = \"old\"\n")
	content, err := adapter.Servers.FromCanonical(testServerSet(), existing)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, toml.Unmarshal(content, &doc))
	assert.Equal(t, "o3", doc["model"], "unrelated config values must survive a rewrite")

	servers := doc["mcp_servers"].(map[string]any)
	assert.NotContains(t, servers, "stale")
	assert.Contains(t, servers, "github")

	back, err := adapter.Servers.ToCanonical(content)
	require.NoError(t, err)
	assert.Equal(t, "npx", back.Servers["github"].Command)
	assert.Equal(t, []string{"-y", "@modelcontextprotocol/server-github"}, back.Servers["github"].Args)
}

func TestServerValidate(t *testing.T) {
	adapter, err := Lookup("claudecode")
	require.NoError(t, err)

	res := adapter.Servers.Validate([]byte("{not json"))
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Issues)

	res = adapter.Servers.Validate([]byte(`{"mcpServers": "nope"}`))
	assert.False(t, res.Valid)
	assert.Equal(t, "/mcpServers", res.Issues[0].Path)

	res = adapter.Servers.Validate([]byte(`{"mcpServers": {}}`))
	assert.True(t, res.Valid)
}
