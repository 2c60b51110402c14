package auditoria_log

import (
	"encoding/json"
	"fmt"
	"strings"
)

const redacted = "***"

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"refresh":       {},
	"access":        {},
	"token":         {},
	"authorization": {},
}

// Redact serializa o payload em JSON trocando o valor de chaves sensíveis
// (senha e tokens) por "***" em qualquer nível. Payloads que não viram JSON
// caem no formato do fmt.
func Redact(data any) string {
	if data == nil {
		return ""
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%+v", data)
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return string(raw)
	}
	out, err := json.Marshal(scrub(tree))
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func scrub(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
				node[k] = redacted
				continue
			}
			node[k] = scrub(child)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = scrub(child)
		}
		return node
	default:
		return v
	}
}
