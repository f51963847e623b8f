package rules

import (
	"github.com/leapstack-labs/svkit/pkg/lint"
)

// All returns the built-in rule definitions.
func All() []lint.RuleDef {
	return []lint.RuleDef{
		CreateObjectNameMatch,
		ExplicitParameterStorageType,
		PackageFilename,
		VoidCast,
	}
}

// RegisterAll registers every built-in rule with reg.
func RegisterAll(reg *lint.Registry) error {
	for _, def := range All() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	for _, def := range All() {
		reg.MustRegister(def)
	}
	return reg
}
