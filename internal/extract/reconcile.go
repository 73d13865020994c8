package extract

// Reconciliation maps a parsed tree onto a schema. It always exists, even
// when required fields are missing; whether an incomplete result fails the
// call is the orchestrator's decision after fallback.
type Reconciliation struct {
	Values    map[string]any
	Defaulted []string
	Missing   []string
}

// reconcile checks each declared field of the schema against the parsed
// value. A present field of the wrong kind counts as missing. Absent optional
// fields are filled from defaults, absent required fields land in Missing.
func reconcile(value any, schema Schema) Reconciliation {
	tree, _ := value.(map[string]any)

	result := Reconciliation{Values: make(map[string]any, len(schema.Fields))}
	for _, field := range schema.Fields {
		if tree != nil {
			if raw, ok := tree[field.Name]; ok && kindMatches(raw, field.Kind) {
				result.Values[field.Name] = raw
				continue
			}
		}
		if field.Required {
			result.Missing = append(result.Missing, field.Name)
			continue
		}
		result.Values[field.Name] = defaultValue(field)
		result.Defaulted = append(result.Defaulted, field.Name)
	}
	return result
}

func kindMatches(value any, kind Kind) bool {
	switch kind {
	case KindList:
		_, ok := value.([]any)
		return ok
	case KindNested:
		_, ok := value.(map[string]any)
		return ok
	case KindScalar:
		switch value.(type) {
		case string, float64, bool:
			return true
		}
		return false
	default:
		return false
	}
}

func defaultValue(field Field) any {
	if field.Kind == KindList {
		return []any{}
	}
	if field.Default != nil {
		return field.Default
	}
	switch field.Kind {
	case KindNested:
		return map[string]any{}
	default:
		return ""
	}
}
