package tools

import (
	"strings"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/logger"
)

var registryLog = logger.New("tools:registry")

// adapters is the registry, in the stable order used for iteration and
// display. IDs are the public names accepted by targets frontmatter and the
// --targets flag.
var adapters = []*Adapter{
	newAgentsmdAdapter(),
	newAiderAdapter(),
	newAmazonQAdapter(),
	newAugmentAdapter(),
	newClaudeCodeAdapter(),
	newClineAdapter(),
	newCodexAdapter(),
	newCopilotAdapter(),
	newCursorAdapter(),
	newGeminiAdapter(),
	newJunieAdapter(),
	newKiroAdapter(),
	newOpenCodeAdapter(),
	newQwenCodeAdapter(),
	newRooAdapter(),
	newWarpAdapter(),
	newWindsurfAdapter(),
	newZedAdapter(),
}

var adaptersByID = func() map[string]*Adapter {
	byID := make(map[string]*Adapter, len(adapters))
	for _, a := range adapters {
		byID[a.ID] = a
	}
	registryLog.Printf("Registered %d tool adapters", len(byID))
	return byID
}()

// All returns every registered adapter in stable order.
func All() []*Adapter {
	out := make([]*Adapter, len(adapters))
	copy(out, adapters)
	return out
}

// IDs returns every registered adapter ID in stable order.
func IDs() []string {
	ids := make([]string, len(adapters))
	for i, a := range adapters {
		ids[i] = a.ID
	}
	return ids
}

// Lookup resolves a tool ID to its adapter. Unknown IDs produce a validation
// error naming the valid ones.
func Lookup(id string) (*Adapter, error) {
	if a, ok := adaptersByID[id]; ok {
		return a, nil
	}
	return nil, &artifact.ValidationError{
		Field:  "tool",
		Value:  id,
		Reason: "unknown tool ID",
		Hint:   "valid IDs: " + strings.Join(IDs(), ", "),
	}
}
