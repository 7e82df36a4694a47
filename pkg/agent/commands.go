package agent

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action is what a matched trigger phrase selects.
type Action string

const (
	ActionNone           Action = ""
	ActionTeachFact      Action = "teach_fact"
	ActionTeachProcedure Action = "teach_procedure"
)

// Commands holds the trigger phrase tables for teach commands. Phrases
// are literal substrings matched against the lower-cased message.
type Commands struct {
	FactTriggers      []string `yaml:"fact_triggers"`
	ProcedureTriggers []string `yaml:"procedure_triggers"`
}

// DefaultCommands returns the built-in trigger phrases.
func DefaultCommands() Commands {
	return Commands{
		FactTriggers: []string{
			"remember that",
			"remember this",
			"remember this fact",
			"remember this knowledge",
			"remember this information",
			"remember this detail",
		},
		ProcedureTriggers: []string{
			"remember the procedure",
			"remember the steps for",
			"remember the steps",
		},
	}
}

// LoadCommands reads a Commands table from a YAML file. Empty lists fall
// back to the defaults so a partial file cannot disable a command class.
func LoadCommands(path string) (Commands, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Commands{}, fmt.Errorf("failed to read commands file: %w", err)
	}
	var c Commands
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Commands{}, fmt.Errorf("failed to parse commands file: %w", err)
	}
	defaults := DefaultCommands()
	if len(c.FactTriggers) == 0 {
		c.FactTriggers = defaults.FactTriggers
	}
	if len(c.ProcedureTriggers) == 0 {
		c.ProcedureTriggers = defaults.ProcedureTriggers
	}
	return c, nil
}

// Match scans the message for a trigger phrase. Fact triggers are checked
// before procedure triggers; within a list the first phrase contained in
// the lower-cased message wins. The matched phrase is returned so the
// caller can strip it to recover the payload.
func (c Commands) Match(message string) (Action, string) {
	lower := strings.ToLower(message)
	for _, trigger := range c.FactTriggers {
		if strings.Contains(lower, trigger) {
			return ActionTeachFact, trigger
		}
	}
	for _, trigger := range c.ProcedureTriggers {
		if strings.Contains(lower, trigger) {
			return ActionTeachProcedure, trigger
		}
	}
	return ActionNone, ""
}

// extractPayload strips the trigger phrase (matched case-insensitively)
// from the message and trims surrounding whitespace and a leading colon,
// preserving the payload's original casing.
func extractPayload(message, trigger string) string {
	lower := strings.ToLower(message)
	idx := strings.Index(lower, trigger)
	if idx < 0 {
		return ""
	}
	payload := message[idx+len(trigger):]
	payload = strings.TrimSpace(payload)
	payload = strings.TrimPrefix(payload, ":")
	return strings.TrimSpace(payload)
}

// parseFact recovers the fact text from a teach-fact message.
func parseFact(message, trigger string) (string, error) {
	fact := extractPayload(message, trigger)
	if fact == "" {
		return "", fmt.Errorf("empty fact after trigger %q", trigger)
	}
	return fact, nil
}

// parseProcedure recovers the procedure name and numbered steps from a
// teach-procedure message. The payload must contain a colon separating
// the name from the comma-separated steps.
func parseProcedure(message, trigger string) (string, []string, error) {
	payload := extractPayload(message, trigger)
	if payload == "" {
		return "", nil, fmt.Errorf("empty procedure after trigger %q", trigger)
	}

	name, stepsPart, found := strings.Cut(payload, ":")
	if !found {
		return "", nil, fmt.Errorf("procedure %q has no ':' separating name from steps", payload)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("procedure has no name before ':'")
	}

	var steps []string
	for _, raw := range strings.Split(stepsPart, ",") {
		step := strings.TrimSpace(raw)
		if step == "" {
			continue
		}
		steps = append(steps, fmt.Sprintf("%d. %s", len(steps)+1, step))
	}
	if len(steps) == 0 {
		return "", nil, fmt.Errorf("procedure %q has no steps after ':'", name)
	}
	return name, steps, nil
}
