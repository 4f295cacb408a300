// Package prompt fills the fixed prompt templates.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"lesson-rag/internal/models"
)

// Build substitutes variables into an f-string template ({name} placeholders,
// {{ and }} for literal braces). Every placeholder must have a value.
func Build(template string, variables map[string]string) (string, error) {
	names, err := Placeholders(template)
	if err != nil {
		return "", models.NewError(models.ErrMissingVariable, err)
	}

	values := make(map[string]any, len(names))
	for _, name := range names {
		v, ok := variables[name]
		if !ok {
			return "", models.Errorf(models.ErrMissingVariable, "missing value for prompt variable %q", name)
		}
		values[name] = v
	}

	tmpl := prompts.PromptTemplate{
		Template:       template,
		InputVariables: names,
		TemplateFormat: prompts.TemplateFormatFString,
	}
	out, err := tmpl.Format(values)
	if err != nil {
		return "", models.NewError(models.ErrMissingVariable, err)
	}
	return out, nil
}

// BuildByID builds one of the registered templates.
func BuildByID(id models.TemplateID, variables map[string]string) (string, error) {
	template, ok := models.Templates[id]
	if !ok {
		return "", models.Errorf(models.ErrMissingVariable, "unknown prompt template %q", id)
	}
	return Build(template, variables)
}

// Placeholders lists the distinct placeholder names in template, in order of
// first appearance.
func Placeholders(template string) ([]string, error) {
	var names []string
	seen := map[string]bool{}
	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed placeholder at offset %d", i)
			}
			name := template[i+1 : i+1+end]
			if name == "" || strings.ContainsAny(name, "{ \t\n") {
				return nil, fmt.Errorf("invalid placeholder %q at offset %d", name, i)
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				i++
			}
		}
	}
	return names, nil
}

// JoinContext renders retrieved chunks the way they are stuffed into {context}.
func JoinContext(chunks []models.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, models.ContextSeparator)
}
