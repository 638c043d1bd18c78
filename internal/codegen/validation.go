package codegen

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"
)

// ValidateTypes checks every scanned type declaration and aggregates all
// problems into one error, keyed by type name. Generation must not proceed
// when this returns a non-nil error.
func ValidateTypes(types []TypeDecl) error {
	var errs errsx.Map
	for _, t := range types {
		if err := ValidateType(t); err != nil {
			errs.Set(t.Name, err)
		}
	}
	return errs.AsError()
}

// ValidateType checks a single type declaration: directive problems recorded
// by the scanner, unparseable tag options, exclude entries naming unknown
// fields, toMap key collisions introduced by renames, and types left with no
// includable fields.
func ValidateType(t TypeDecl) error {
	var errs errsx.Map

	for i, problem := range t.Problems {
		errs.Set(fmt.Sprintf("directive[%d]", i), fmt.Errorf("%s", problem))
	}

	known := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		known[f.Name] = true
		for _, problem := range f.Tag.Problems {
			errs.Set(fmt.Sprintf("field '%s'", f.Name), fmt.Errorf("%s", problem))
		}
	}

	for _, name := range t.Exclude {
		if !known[name] {
			errs.Set("exclude", fmt.Errorf("'%s' does not name a field of %s", name, t.TargetName()))
		}
	}

	if err := validateMapKeys(t); err != nil {
		errs.Set("target", err)
	}

	if len(t.Problems) == 0 && !hasIncludableField(t) {
		errs.Set("fields", fmt.Errorf("no field of %s survives the exclusion rules; nothing to generate", t.TargetName()))
	}

	return errs.AsError()
}

// validateMapKeys flags a rename that collides with another included field's
// toMap key. Duplicate declared names across the embedding chain are accepted
// source ambiguity and not reported here.
func validateMapKeys(t TypeDecl) error {
	keyOwner := make(map[string]string)
	for _, f := range t.Fields {
		policy := ResolvePolicy(f, t.Exclude)
		if !policy.IncludeToMap {
			continue
		}
		renamed := policy.MapKey != f.Name
		if owner, dup := keyOwner[policy.MapKey]; dup && (renamed || owner != f.Name) {
			return fmt.Errorf("key '%s' is written by both '%s' and '%s'", policy.MapKey, owner, f.Name)
		}
		keyOwner[policy.MapKey] = f.Name
	}
	return nil
}

func hasIncludableField(t TypeDecl) bool {
	for _, f := range t.Fields {
		policy := ResolvePolicy(f, t.Exclude)
		if policy.IncludeToMap || policy.IncludeToBean {
			return true
		}
	}
	return false
}

// Summarize renders a short human-readable report of a scanned type for the
// validate subcommand's verbose output.
func Summarize(t TypeDecl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)", t.Name, t.SourceFile)
	if t.Mapping != "" {
		fmt.Fprintf(&sb, " -> %s", t.Mapping)
	}
	included := 0
	for _, f := range t.Fields {
		policy := ResolvePolicy(f, t.Exclude)
		if policy.IncludeToMap || policy.IncludeToBean {
			included++
		}
	}
	fmt.Fprintf(&sb, ": %d of %d fields mapped", included, len(t.Fields))
	return sb.String()
}
