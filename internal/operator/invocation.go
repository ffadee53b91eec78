// Package operator exposes the dictionary annotation as a template operator:
// an operator name, named parameters with defaults, and Modify over an input value.
package operator

import (
	"maps"

	"github.com/at-ishikawa/keytip/internal/config"
	"github.com/at-ishikawa/keytip/internal/dictionary"
)

const (
	// Name is the operator name templates call.
	Name = "dictionary"

	ParamCaseSensitive = "case_sensitive"
)

// NamedParameterList returns the parameters the operator accepts with their defaults.
func NamedParameterList(settings config.DictionaryConfig) map[string]any {
	return map[string]any{
		ParamCaseSensitive: settings.CaseSensitive,
	}
}

// Invocation is a single call of the operator: the value to annotate and its named parameters.
type Invocation struct {
	value  string
	params map[string]any
}

func NewInvocation(value any, params map[string]any) (*Invocation, error) {
	text, ok := value.(string)
	if !ok {
		return nil, dictionary.NewError(dictionary.KindConstruction,
			"operator value must be a string, got %T", value)
	}
	if len(params) == 0 {
		return nil, dictionary.NewError(dictionary.KindConstruction,
			"named parameters of the %s operator cannot be empty", Name)
	}
	return &Invocation{
		value:  text,
		params: maps.Clone(params),
	}, nil
}

func (i *Invocation) Value() string {
	return i.value
}

func (i *Invocation) Parameter(name string) (any, error) {
	value, ok := i.params[name]
	if !ok {
		return nil, dictionary.NewError(dictionary.KindLookup, "parameter %q is not set", name)
	}
	return value, nil
}

func (i *Invocation) Bool(name string) (bool, error) {
	value, err := i.Parameter(name)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, dictionary.NewError(dictionary.KindLookup,
			"parameter %q must be a bool, got %T", name, value)
	}
	return b, nil
}
