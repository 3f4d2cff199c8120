package prompt

import "strings"

const MissingValue = "Nao informado"

// SafeFormat substitutes {key} placeholders without touching other braces.
// The stage templates embed literal JSON examples, so fmt-style or
// text/template expansion would mangle them.
func SafeFormat(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		if value == "" {
			value = MissingValue
		}
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
