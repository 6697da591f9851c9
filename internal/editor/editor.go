// Package editor turns the field registry plus a draft into a renderable
// form: one control per field, grouped into sections by owning service.
// Fivestar fields get a star control, everything else (number fields and
// any type this build does not recognize) gets a text control, so a field
// with a newer type than the client still renders and keeps its value.
package editor

import (
	"errors"

	"github.com/marait123/gnothi/internal/draft"
	"github.com/marait123/gnothi/internal/markup"
	"github.com/marait123/gnothi/internal/types"
)

// ErrReadOnly is returned when a mutation targets a service-owned field.
var ErrReadOnly = errors.New("editor: field is owned by a service and cannot be edited")

// Control is a single editable (or read-only) field widget bound to a
// draft. The concrete type is *StarsControl or *TextControl.
type Control interface {
	Field() types.Field
	Label() markup.Label
	ReadOnly() bool
	// Clear unsets the field's value in the draft.
	Clear() error
}

type base struct {
	field types.Field
	label markup.Label
	d     *draft.Draft
}

func (b *base) Field() types.Field  { return b.field }
func (b *base) Label() markup.Label { return b.label }

// ReadOnly reports whether the field belongs to a service. Fields in the
// custom bucket are always the user's own.
func (b *base) ReadOnly() bool {
	return b.field.Service != "" && b.field.Service != types.CustomGroup
}

func (b *base) set(v types.Value) error {
	if b.ReadOnly() {
		return ErrReadOnly
	}
	b.d.SetValue(b.field.ID, v)
	return nil
}

func (b *base) Clear() error { return b.set(types.Unset()) }

// StarsControl edits a fivestar field as a 0..5 rating.
type StarsControl struct {
	base
}

// Stars returns the current rating; an unset value reads as zero stars.
func (c *StarsControl) Stars() int {
	v := c.d.Value(c.field.ID)
	if v.Kind == types.KindStars {
		return v.Stars
	}
	return 0
}

// SetStars records a rating, clamped to the 0..5 range.
func (c *StarsControl) SetStars(n int) error {
	return c.set(types.StarsValue(n))
}

// TextControl edits a field through its string representation. This is
// the default control: number fields and fields of unrecognized type
// both land here.
type TextControl struct {
	base
}

// Text returns the current value rendered as text.
func (c *TextControl) Text() string {
	return c.d.Value(c.field.ID).String()
}

// SetText records the input as the field's value. Whitespace is kept as
// typed; an empty string unsets the field.
func (c *TextControl) SetText(s string) error {
	if s == "" {
		return c.set(types.Unset())
	}
	return c.set(types.NumberValue(s))
}

// builders maps field types to their control constructors. Absent types
// fall through to the text control.
var builders = map[types.FieldType]func(base) Control{
	types.FieldFivestar: func(b base) Control { return &StarsControl{base: b} },
}

// NewControl builds the control for a single field bound to d.
func NewControl(f types.Field, d *draft.Draft) Control {
	b := base{field: f, label: markup.Render(f.Name), d: d}
	if build, ok := builders[f.Type]; ok {
		return build(b)
	}
	return &TextControl{base: b}
}

// Section is one service's block of controls.
type Section struct {
	Service string
	// CanSync is set when the section's service can be asked to refresh
	// this entry: the entry must already be persisted, and the custom
	// bucket has no service to call.
	CanSync  bool
	Controls []Control
}

// Form is the full edit surface for one entry.
type Form struct {
	Sections []Section
}

// BuildForm groups the registry's fields by owning service and binds a
// control for each to the draft. persisted reports whether the entry
// already exists on the server.
func BuildForm(fields []types.Field, d *draft.Draft, persisted bool) Form {
	groups := types.GroupFields(fields)
	form := Form{Sections: make([]Section, 0, len(groups))}
	for _, g := range groups {
		sec := Section{
			Service:  g.Service,
			CanSync:  persisted && g.Service != types.CustomGroup,
			Controls: make([]Control, 0, len(g.Fields)),
		}
		for _, f := range g.Fields {
			sec.Controls = append(sec.Controls, NewControl(f, d))
		}
		form.Sections = append(form.Sections, sec)
	}
	return form
}
