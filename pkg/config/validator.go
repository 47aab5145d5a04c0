package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalid is returned for configuration files that fail validation
var ErrInvalid = errors.New("configuration file is not valid")

// ValidationError lists every schema violation found in a file
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return ErrInvalid.Error() + ":\n  - " + strings.Join(e.Problems, "\n  - ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate validates a configuration file against the JSON schema
func Validate(configFile string) error {
	schemaLoader := gojsonschema.NewStringLoader(Schema)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + configFile)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &ValidationError{Problems: problems}
	}

	return nil
}

// Check verifies names are unique and every job references a known
// connection
func (c *Config) Check() error {
	var problems []string

	seen := make(map[string]bool)
	for _, cc := range c.Connections {
		if seen[cc.Name] {
			problems = append(problems, fmt.Sprintf("duplicate connection name %q", cc.Name))
		}
		seen[cc.Name] = true
	}

	seenJobs := make(map[string]bool)
	for _, job := range c.Jobs {
		if seenJobs[job.Name] {
			problems = append(problems, fmt.Sprintf("duplicate job name %q", job.Name))
		}
		seenJobs[job.Name] = true

		if !seen[job.Connection] {
			problems = append(problems, fmt.Sprintf("job %q references unknown connection %q", job.Name, job.Connection))
		}
		if job.Files != nil && len(job.Files) == 0 {
			problems = append(problems, fmt.Sprintf("job %q: List of files to include cannot be empty", job.Name))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
