package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTemplatesParse(t *testing.T) {
	for name, tmpl := range map[string]string{
		"user":    UserConfigTemplate,
		"project": ProjectConfigTemplate,
	} {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, tmpl)

			var doc map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(tmpl), &doc))
			assert.Contains(t, doc, "log")
		})
	}
}
