package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptors_DefaultModelIsSupported(t *testing.T) {
	for _, d := range All() {
		assert.True(t, d.Supports(d.DefaultModel), "provider %s: default model %q not in supported set", d.ID, d.DefaultModel)
	}
}

func TestDescriptors_UniqueIDs(t *testing.T) {
	seen := map[ID]bool{}
	for _, d := range All() {
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
	}
	assert.Len(t, seen, 4)
}

func TestDescriptors_Requirements(t *testing.T) {
	tests := []struct {
		id         ID
		credential bool
		baseURL    bool
	}{
		{OpenAI, true, false},
		{Anthropic, true, false},
		{Ollama, false, true},
		{HuggingFace, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			d, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.credential, d.RequiresCredential)
			assert.Equal(t, tt.baseURL, d.RequiresBaseURL)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("gemini")
	assert.False(t, ok)
}

func TestAll_IsCopy(t *testing.T) {
	all := All()
	all[0].DisplayName = "changed"

	d, _ := Lookup(all[0].ID)
	assert.NotEqual(t, "changed", d.DisplayName)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Anthropic Claude", DisplayName(Anthropic))
	assert.Equal(t, "Ollama (Lokalny)", DisplayName(Ollama))
	assert.Equal(t, NotConfiguredName, DisplayName(""))
	assert.Equal(t, "mistral", DisplayName("mistral"))
}
