package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicyEmptyPath(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy(), p)
}

func TestLoadPolicyOverridesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	yaml := "pronouns:\n  - \"she/her\"\ngraduation_target: \"December 2027\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	p, err := LoadPolicy(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"she/her"}, p.Pronouns)
	assert.Equal(t, "December 2027", p.GradTarget)
	//untouched categories keep the defaults
	assert.Equal(t, DefaultPolicy().Veteran, p.Veteran)
}

func TestLoadPolicyMissingFile(t *testing.T) {
	_, err := LoadPolicy("does/not/exist.yaml")
	assert.Error(t, err)
}
