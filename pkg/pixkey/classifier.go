package pixkey

import (
	"fmt"
	"strings"
)

// Fallback decides the kind returned when no rule matches.
//
// Earlier versions of the payment form either left the kind empty or assumed
// a random key. The choice is configuration until product settles it.
type Fallback string

const (
	FallbackUnknown Fallback = "unknown"
	FallbackRandom  Fallback = "random"
)

// ParseFallback parses a configured fallback policy. Empty selects FallbackUnknown.
func ParseFallback(s string) (Fallback, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FallbackUnknown):
		return FallbackUnknown, nil
	case string(FallbackRandom):
		return FallbackRandom, nil
	default:
		return "", fmt.Errorf("invalid pix key fallback %q (expected unknown or random)", s)
	}
}

// Result holds the outcome of a classification.
type Result struct {
	Kind  Kind
	Phone PhoneType
	// Matched is false when Kind came from the fallback policy.
	Matched bool
	// Rule is the name of the matching rule, empty on fallback.
	Rule    string
	Digits  string
	Display string
}

// Classifier classifies raw PIX keys with an ordered rule table.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules    []Rule
	fallback Fallback
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithFallback sets the policy applied when no rule matches.
func WithFallback(f Fallback) Option {
	return func(c *Classifier) { c.fallback = f }
}

// WithRules replaces the default rule table.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) { c.rules = rules }
}

// New returns a Classifier using DefaultRules and FallbackUnknown unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{rules: DefaultRules(), fallback: FallbackUnknown}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fallback returns the configured fallback policy.
func (c *Classifier) Fallback() Fallback { return c.fallback }

// Classify returns the kind of raw and its masked display form.
func (c *Classifier) Classify(raw string) Result {
	digits := Digits(raw)
	for _, rule := range c.rules {
		if rule.Match(raw, digits) {
			return Result{
				Kind:    rule.Kind,
				Phone:   rule.Phone,
				Matched: true,
				Rule:    rule.Name,
				Digits:  digits,
				Display: Format(raw, rule.Kind),
			}
		}
	}

	kind := Unknown
	if c.fallback == FallbackRandom {
		kind = Random
	}
	return Result{Kind: kind, Digits: digits, Display: raw}
}

var defaultClassifier = New()

// Classify classifies raw with the default rules and FallbackUnknown.
func Classify(raw string) Result {
	return defaultClassifier.Classify(raw)
}
