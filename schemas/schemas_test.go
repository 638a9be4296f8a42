package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestTaxonomySchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "taxonomy.schema.json"))
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestTaxonomySchema_CompilesAndValidates(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "taxonomy.schema.json"))
	require.NoError(t, err)

	schemaLoader := gojsonschema.NewBytesLoader(data)

	valid := `{
		"synonyms": {"javascript": ["js"]},
		"stacks": {"mern stack": ["mongodb"]},
		"dependencies": {"react": [{"skill": "javascript", "importance": 0.8, "relation": "prerequisite"}]},
		"estimates": [{"skill": "react", "weeks": 6}]
	}`
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(valid))
	require.NoError(t, err)
	assert.True(t, result.Valid(), "well-formed taxonomy should validate")

	invalid := `{"dependencies": {"react": [{"skill": "javascript", "importance": 2, "relation": "prerequisite"}]}}`
	result, err = gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(invalid))
	require.NoError(t, err)
	assert.False(t, result.Valid(), "importance above 1 should be rejected")
}
