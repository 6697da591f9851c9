package types

// CustomGroup is the reserved grouping key for user-defined fields.
// A service that registers under the literal name "Custom" lands in the
// same bucket; upstream never resolved that ambiguity and neither do we.
const CustomGroup = "Custom"

// FieldGroup is a presentation-only partition of fields sharing one
// owning service. Never persisted; recomputed whenever the registry
// changes.
type FieldGroup struct {
	Service string
	Fields  []Field
}

// GroupFields partitions fields by owning service, preserving relative
// order within each group and ordering groups by first appearance. Fields
// without a service go to the Custom bucket. Every field lands in exactly
// one group.
func GroupFields(fields []Field) []FieldGroup {
	var groups []FieldGroup
	index := make(map[string]int)
	for _, f := range fields {
		svc := f.Service
		if svc == "" {
			svc = CustomGroup
		}
		i, ok := index[svc]
		if !ok {
			i = len(groups)
			index[svc] = i
			groups = append(groups, FieldGroup{Service: svc})
		}
		groups[i].Fields = append(groups[i].Fields, f)
	}
	return groups
}
