// Package pii implements regex-driven PII detection and sanitization for
// email content. Detection is pattern-based best effort: there is no NLP or
// named-entity recognition, so PII that does not fit the registry patterns
// will not be caught.
package pii

import (
	"fmt"
	"strings"
)

// maskPlaceholder replaces the hidden portion of a value in Details.
const maskPlaceholder = "***"

// Engine classifies text into PII categories and rewrites text to redact
// detected PII. It is immutable after construction, performs no I/O and no
// logging, and is safe for concurrent use.
//
// Confidence is binary: 1.0 when any detector matched, 0.0 otherwise.
// Combined with safeToSend = !hasPII || confidence < threshold, a threshold
// of 1.0 or above marks every result safe, detected PII included.
type Engine struct {
	enabled   bool
	threshold float64
}

// New creates an engine. enabled=false turns Validate into a bypass that
// reports every input as safe; threshold is the confidence cutoff in [0,1].
func New(enabled bool, threshold float64) *Engine {
	return &Engine{enabled: enabled, threshold: threshold}
}

// Enabled reports whether detection is active.
func (e *Engine) Enabled() bool { return e.enabled }

// Threshold returns the configured confidence cutoff.
func (e *Engine) Threshold() float64 { return e.threshold }

// Validate runs every detector over content and reports all matches.
// Each match contributes one entry to PIITypes and one masked entry to
// Details, in registry order then match order.
func (e *Engine) Validate(content string) DetectionResult {
	if !e.enabled {
		return DetectionResult{
			HasPII:     false,
			PIITypes:   []string{},
			Confidence: 1.0,
			Details:    []string{},
			SafeToSend: true,
		}
	}

	piiTypes := make([]string, 0)
	details := make([]string, 0)

	for _, d := range registry {
		for _, m := range d.pattern.FindAllStringSubmatch(content, -1) {
			piiTypes = append(piiTypes, string(d.category))
			if d.groups {
				details = append(details, fmt.Sprintf("Found %s: %s", d.category, strings.Join(m[1:], "-")))
			} else {
				details = append(details, fmt.Sprintf("Found %s: %s", d.category, mask(m[0])))
			}
		}
	}

	hasPII := len(details) > 0
	confidence := 0.0
	if hasPII {
		confidence = 1.0
	}

	return DetectionResult{
		HasPII:     hasPII,
		PIITypes:   piiTypes,
		Confidence: confidence,
		Details:    details,
		SafeToSend: !hasPII || confidence < e.threshold,
	}
}

// Sanitize rewrites content with each category's redaction rule and returns
// the result. Categories apply sequentially in registry order, each pass
// operating on the output of the previous one, so text introduced by an
// earlier replacement is visible to later patterns. Email keeps the domain
// of the matched address and replaces only the local part; every other
// category replaces the whole span with its token. Sanitization is not
// gated on the enabled flag.
func (e *Engine) Sanitize(content string) string {
	sanitized := content
	for _, d := range registry {
		if d.category == CategoryEmail {
			sanitized = d.pattern.ReplaceAllStringFunc(sanitized, func(m string) string {
				return d.token + m[strings.Index(m, "@"):]
			})
			continue
		}
		sanitized = d.pattern.ReplaceAllString(sanitized, d.token)
	}
	return sanitized
}

// mask obscures a matched value for reporting. Values of four characters or
// fewer are masked fully; longer values keep their first two and last two
// characters.
func mask(value string) string {
	if len(value) <= 4 {
		return maskPlaceholder
	}
	return value[:2] + maskPlaceholder + value[len(value)-2:]
}
