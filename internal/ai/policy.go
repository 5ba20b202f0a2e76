package ai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the preferred answer patterns for the sensitive
// closed-choice question categories. Patterns are matched as lowercase
// substrings against the presented options, first hit wins. The values
// are configuration, not code: load a YAML file to change how a run
// answers demographic, authorization and timeline questions.
type Policy struct {
	Pronouns      []string `yaml:"pronouns"`
	Gender        []string `yaml:"gender"`
	Hispanic      []string `yaml:"hispanic"`
	Ethnicity     []string `yaml:"ethnicity"`
	Veteran       []string `yaml:"veteran"`
	Disability    []string `yaml:"disability"`
	Authorization string   `yaml:"work_authorization"` // answer for work-authorization questions
	GradTarget    string   `yaml:"graduation_target"`  // e.g. "May 2026"
}

// DefaultPolicy mirrors the answer preferences the hosted product
// shipped with. Override any of it per run via policy_path.
func DefaultPolicy() Policy {
	return Policy{
		Pronouns:      []string{"he/him"},
		Gender:        []string{"male"},
		Hispanic:      []string{"no"},
		Ethnicity:     []string{"asian", "decline", "prefer not"},
		Veteran:       []string{"not a protected veteran", "no military"},
		Disability:    []string{"no, i do not have a disability", "no disability"},
		Authorization: "Yes",
		GradTarget:    "May 2026",
	}
}

// LoadPolicy reads a policy YAML, filling unset categories from the
// default. An empty path means the default policy as-is.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse policy file: %w", err)
	}
	return p, nil
}
