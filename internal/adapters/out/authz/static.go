// Package authz holds the operator allow-list read from configuration.
//
// The list is a comma-separated set of grants, each "actor=pattern|pattern".
// A pattern is an action name, a prefix ending in ".*" (e.g. "order.*"), or
// "*" for every action:
//
//	AUTHORIZED_ACTORS="dilan=*,aram=order.*|cart.manage"
package authz

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// StaticAuthorizer implements ports.Authorizer over a fixed allow-list.
type StaticAuthorizer struct {
	grants map[string][]string
}

func ParseGrants(raw string) (*StaticAuthorizer, error) {
	grants := make(map[string][]string)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, patterns, ok := strings.Cut(entry, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if !ok || name == "" {
			return nil, errs.NewValueIsInvalidErrorWithCause("AUTHORIZED_ACTORS",
				fmt.Errorf("grant %q is not actor=pattern", entry))
		}
		for _, pattern := range strings.Split(patterns, "|") {
			pattern = strings.TrimSpace(pattern)
			if pattern == "" {
				return nil, errs.NewValueIsInvalidErrorWithCause("AUTHORIZED_ACTORS",
					fmt.Errorf("grant %q has an empty pattern", entry))
			}
			grants[name] = append(grants[name], pattern)
		}
	}
	return &StaticAuthorizer{grants: grants}, nil
}

func (a *StaticAuthorizer) MayPerform(_ context.Context, actor string, action ports.Action) (bool, error) {
	for _, pattern := range a.grants[strings.ToLower(actor)] {
		if matches(pattern, string(action)) {
			return true, nil
		}
	}
	return false, nil
}

func matches(pattern, action string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasSuffix(pattern, ".*"):
		return strings.HasPrefix(action, strings.TrimSuffix(pattern, "*"))
	default:
		return pattern == action
	}
}
