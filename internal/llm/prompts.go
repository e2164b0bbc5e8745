package llm

import (
	_ "embed"
	"sort"
)

const DefaultPromptVersion = "v2"

var (
	//go:embed prompts/v1.txt
	promptV1 string
	//go:embed prompts/v2.txt
	promptV2 string
)

// v1 is the plain triage prompt; v2 adds strict output rules for type, labels and priority.
var promptTemplates = map[string]string{
	"v1": promptV1,
	"v2": promptV2,
}

// PromptTemplate returns the prompt template text and whether the version was recognized.
// Unknown versions fall back to the default template.
func PromptTemplate(version string) (string, bool) {
	if tmpl, ok := promptTemplates[version]; ok {
		return tmpl, true
	}
	return promptTemplates[DefaultPromptVersion], false
}

// PromptVersions lists the known template versions in order.
func PromptVersions() []string {
	out := make([]string, 0, len(promptTemplates))
	for v := range promptTemplates {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
