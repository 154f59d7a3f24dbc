// Package sanitizer implements the Command Sanitizer: a
// pure function of (command string, active Policy) that returns
// Accepted or Rejected. It is the single point every command-producing
// path must route through before a command reaches the Bridge.
package sanitizer

import (
	"fmt"
	"strconv"
	"strings"
)

// Result is the outcome of sanitizing a single command.
type Result struct {
	Accepted bool
	Reason   string
}

func accept() Result { return Result{Accepted: true} }

func reject(reason string) Result { return Result{Accepted: false, Reason: reason} }

// Check applies its checks in order, short-circuiting on the first
// failure. It never mutates policy and has no side effects.
func Check(command string, policy *Policy) Result {
	trimmed := strings.TrimSpace(command)

	if len(trimmed) < 1 || len(trimmed) > policy.MaxCommandLength {
		return reject(fmt.Sprintf("length %d outside [1, %d]", len(trimmed), policy.MaxCommandLength))
	}

	if policy.SafetyChecksOn {
		if reason := syntacticViolation(trimmed); reason != "" {
			return reject(reason)
		}
	}

	if !policy.DangerousAllowed {
		first := firstToken(trimmed)
		if reason := DangerousReason(strings.ToLower(first)); reason != "" {
			return reject("dangerous operation: " + reason)
		}
	}

	if policy.BuildBox != nil {
		if reason := coordinateViolation(trimmed, policy.BuildBox); reason != "" {
			return reject(reason)
		}
	}

	return accept()
}

func firstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// syntacticViolation is a syntactic filter only, not an authorization
// filter: unbalanced quoting, control characters, and shell
// metacharacters that could escape the chat-command grammar.
func syntacticViolation(command string) string {
	for _, r := range command {
		if r == '\n' || r == '\r' || r == 0 {
			return "contains newline or null character"
		}
	}

	if strings.ContainsAny(command, ";&|`$") {
		return "contains shell metacharacter"
	}

	if !quotesBalanced(command) {
		return "unbalanced quoting"
	}

	return ""
}

func quotesBalanced(command string) bool {
	var single, double int
	escaped := false
	for _, r := range command {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '\'':
			single++
		case '"':
			double++
		}
	}
	return single%2 == 0 && double%2 == 0
}

// coordinateViolation parses every triple shaped like "x y z" (vanilla)
// or "x,y,z" (large-region) in command and rejects if any lies outside
// box. Unparseable numerics are never used as evidence of violation
// (best-effort parsing).
func coordinateViolation(command string, box *Box) string {
	for _, triple := range findTriples(command) {
		if !box.Contains(triple[0], triple[1], triple[2]) {
			return fmt.Sprintf("coordinate (%d,%d,%d) outside build box", triple[0], triple[1], triple[2])
		}
	}
	return ""
}

// findTriples scans command for integer triples in either vanilla
// ("x y z", space separated tokens among the command's fields) or
// large-region ("x,y,z", comma separated within one token) shape.
func findTriples(command string) [][3]int {
	var triples [][3]int

	fields := strings.Fields(command)
	for _, f := range fields {
		if strings.Contains(f, ",") {
			parts := strings.Split(f, ",")
			if len(parts) == 3 {
				if t, ok := parseTriple(parts[0], parts[1], parts[2]); ok {
					triples = append(triples, t)
				}
			}
		}
	}

	for i := 0; i+2 < len(fields); i++ {
		if t, ok := parseTriple(fields[i], fields[i+1], fields[i+2]); ok {
			triples = append(triples, t)
		}
	}

	return triples
}

func parseTriple(a, b, c string) ([3]int, bool) {
	x, errX := strconv.Atoi(strings.TrimPrefix(a, "~"))
	y, errY := strconv.Atoi(strings.TrimPrefix(b, "~"))
	z, errZ := strconv.Atoi(strings.TrimPrefix(c, "~"))
	if errX != nil || errY != nil || errZ != nil {
		return [3]int{}, false
	}
	return [3]int{x, y, z}, true
}
