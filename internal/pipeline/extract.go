package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtractCode pulls the tool call line out of raw model output. Models wrap
// their answer in markdown fences or backticks despite instructions, and
// sometimes drop the "fig, result =" assignment.
func ExtractCode(content, toolName string) string {
	code := strings.TrimSpace(content)
	if i := strings.Index(code, "```python"); i >= 0 {
		code = code[i+len("```python"):]
		if j := strings.Index(code, "```"); j >= 0 {
			code = code[:j]
		}
		code = strings.TrimSpace(code)
	} else if strings.Contains(code, "```") {
		parts := strings.SplitN(code, "```", 3)
		if len(parts) >= 2 {
			code = strings.TrimSpace(parts[1])
		}
	} else if strings.HasPrefix(code, "`") && strings.HasSuffix(code, "`") {
		code = strings.TrimSpace(strings.Trim(code, "`"))
	}

	if strings.HasPrefix(code, toolName) && !strings.Contains(code, "fig, result") {
		code = "fig, result = " + code
	}
	return code
}

// ToolCall is a parsed tool invocation.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ParseToolCall parses a generated call of the form
// "fig, result = tool_name(df, key=value, ...)" into its name and keyword
// arguments. The df placeholder and None values are dropped. Values may be
// quoted strings, integers, floats, or True/False.
func ParseToolCall(code string) (ToolCall, error) {
	s := strings.TrimSpace(code)
	if i := strings.Index(s, "="); i >= 0 && strings.Contains(s[:i], "fig") {
		s = strings.TrimSpace(s[i+1:])
	}

	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end < open {
		return ToolCall{}, fmt.Errorf("no function call found in %q", code)
	}

	name := strings.TrimSpace(s[:open])
	if name == "" || !isIdentifier(name) {
		return ToolCall{}, fmt.Errorf("invalid function name in %q", code)
	}

	args := make(map[string]any)
	for _, part := range splitArgs(s[open+1 : end]) {
		part = strings.TrimSpace(part)
		if part == "" || part == "df" {
			continue
		}
		eq := strings.Index(part, "=")
		if eq < 0 {
			return ToolCall{}, fmt.Errorf("positional argument %q not supported", part)
		}
		key := strings.TrimSpace(part[:eq])
		if !isIdentifier(key) {
			return ToolCall{}, fmt.Errorf("invalid argument name %q", key)
		}
		value, ok, err := parseValue(strings.TrimSpace(part[eq+1:]))
		if err != nil {
			return ToolCall{}, fmt.Errorf("argument %s: %w", key, err)
		}
		if ok {
			args[key] = value
		}
	}

	return ToolCall{Name: name, Args: args}, nil
}

// splitArgs splits an argument list on top-level commas, respecting quotes.
func splitArgs(s string) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// parseValue converts an argument literal. The second return is false when
// the value should be dropped (None).
func parseValue(s string) (any, bool, error) {
	if s == "" {
		return nil, false, fmt.Errorf("empty value")
	}
	if s == "None" {
		return nil, false, nil
	}
	if s == "True" {
		return true, true, nil
	}
	if s == "False" {
		return false, true, nil
	}
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1], true, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true, nil
	}
	return nil, false, fmt.Errorf("unsupported literal %q", s)
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}
