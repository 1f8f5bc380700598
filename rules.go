package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	svn "github.com/kfsone/svn-portfolio/lib"
	yml "gopkg.in/yaml.v3"
)

// Rules captures the yaml description of a ruleset.
//
//	# top-level directories containing this are groups
//	group-token: Assignment
//
//	# characters of repository root to strip from log paths
//	prefix-length: 10
//
//	# like svndumpfilter, elide these paths entirely
//	filter:
//	  - Junk
//
//	# move paths, applied before filter
//	replace:
//	  Assignment0: Archive/Assignment0
//
//	# comment word filter
//	words:
//	  darn: apple
type Rules struct {
	Filename     string            `yaml:"-"`
	GroupToken   string            `yaml:"group-token,omitempty"`
	PrefixLength int               `yaml:"prefix-length,omitempty"`
	Filter       []string          `yaml:"filter,omitempty"`
	Replace      map[string]string `yaml:"replace,omitempty"`
	Words        map[string]string `yaml:"words,omitempty"`
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// NewRules returns a new Rules object populated from the yaml
// definition in a given file. If the file doesn't exist, returns
// the default ruleset.
func NewRules(filename string) (*Rules, error) {
	rules := &Rules{
		Filename:     filename,
		GroupToken:   svn.DefaultGroupToken,
		PrefixLength: svn.DefaultPrefixLength,
	}

	// Only try and load the file if it has a name.
	if filename == "" {
		return rules, nil
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return rules, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})

	if err := yml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parsing rules %s: %w", filename, err)
	}
	rules.Filename = filename

	return rules, nil
}

// Group returns the predicate selecting top-level groups.
func (r *Rules) Group() svn.GroupFunc {
	return svn.ContainsToken(r.GroupToken)
}

// Options returns the parser options the rules describe.
func (r *Rules) Options() svn.Options {
	opts := svn.Options{
		Group:        r.Group(),
		PrefixLength: r.PrefixLength,
	}
	if len(r.Filter) > 0 || len(r.Replace) > 0 {
		opts.Rewrite = r.rewritePath
	}
	return opts
}
