// Package domainfile loads a bla.DomainSpec from a YAML document, so a
// scenario's variable domains can live in a checked-in file instead of Go
// source.
package domainfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mr0re1/bla"
)

// varSpec is the YAML shape of one variable declaration. Exactly one of
// Bool, Range, or Set should be set; Bool is a YAML boolean giving the
// variable's initial value.
type varSpec struct {
	Name  string `yaml:"name"`
	Bool  *bool  `yaml:"bool"`
	Range []int  `yaml:"range"`
	Set   []int  `yaml:"set"`
}

// file is the top-level YAML document shape: a list of variable
// declarations under "vars".
type file struct {
	Vars []varSpec `yaml:"vars"`
}

// Load reads and parses path into a bla.DomainSpec.
func Load(path string) (bla.DomainSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("domainfile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document into a bla.DomainSpec.
func Parse(data []byte) (bla.DomainSpec, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("domainfile: %w", err)
	}

	spec := make(bla.DomainSpec, 0, len(f.Vars))
	for _, v := range f.Vars {
		decl, err := v.toDecl()
		if err != nil {
			return nil, err
		}
		spec = append(spec, decl)
	}
	return spec, nil
}

func (v varSpec) toDecl() (bla.VarDecl, error) {
	if v.Name == "" {
		return bla.VarDecl{}, fmt.Errorf("domainfile: variable declaration missing a name")
	}

	set := 0
	if v.Bool != nil {
		set++
	}
	if v.Range != nil {
		set++
	}
	if v.Set != nil {
		set++
	}
	if set != 1 {
		return bla.VarDecl{}, fmt.Errorf("domainfile: %s: exactly one of bool/range/set must be given", v.Name)
	}

	switch {
	case v.Bool != nil:
		return bla.BoolInit(v.Name, *v.Bool), nil

	case v.Range != nil:
		if len(v.Range) != 2 {
			return bla.VarDecl{}, fmt.Errorf("domainfile: %s: range must have exactly 2 entries [lo, hi]", v.Name)
		}
		if v.Range[1] < v.Range[0] {
			return bla.VarDecl{}, fmt.Errorf("domainfile: %s: empty range [%d, %d]", v.Name, v.Range[0], v.Range[1])
		}
		return bla.IntRange(v.Name, v.Range[0], v.Range[1]), nil

	case v.Set != nil:
		if len(v.Set) == 0 {
			return bla.VarDecl{}, fmt.Errorf("domainfile: %s: set must not be empty", v.Name)
		}
		return bla.IntSet(v.Name, v.Set...), nil
	}

	panic("unreachable")
}
