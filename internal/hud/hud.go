// Package hud is the tweak panel: a list of editable values shown over the
// scene, one of them selected.
package hud

import (
	"fmt"
	"strings"
)

type Item interface {
	String() string
	NextItem()
	PreviousItem()
}

type BoolEdit struct {
	Name  string
	Value *bool
}

func (b *BoolEdit) String() string {
	return fmt.Sprintf("%s: <  %v  >", b.Name, *b.Value)
}

func (b *BoolEdit) NextItem() {
	*b.Value = !*b.Value
}

func (b *BoolEdit) PreviousItem() {
	*b.Value = !*b.Value
}

// FloatEdit steps a float by Step, clamped to [Min, Max] when Max > Min.
type FloatEdit[T ~float32 | ~float64] struct {
	Name     string
	Value    *T
	Step     T
	Min, Max T
}

func (f *FloatEdit[T]) String() string {
	return fmt.Sprintf("%s: <  %.2f  >", f.Name, float64(*f.Value))
}

func (f *FloatEdit[T]) NextItem() {
	*f.Value = f.clamp(*f.Value + f.Step)
}

func (f *FloatEdit[T]) PreviousItem() {
	*f.Value = f.clamp(*f.Value - f.Step)
}

func (f *FloatEdit[T]) clamp(v T) T {
	if f.Max <= f.Min {
		return v
	}
	return min(max(v, f.Min), f.Max)
}

type IntEdit struct {
	Name  string
	Value *int
}

func (i *IntEdit) String() string {
	return fmt.Sprintf("%s: <  %d  >", i.Name, *i.Value)
}

func (i *IntEdit) NextItem() {
	*i.Value += 1
}

func (i *IntEdit) PreviousItem() {
	*i.Value -= 1
}

// Panel is the list of items plus the cursor.
type Panel struct {
	Items    []Item
	Selected int
	Visible  bool
}

// Toggle hides a visible panel or shows a hidden one. ready is asked
// before showing and keeps the panel hidden when it reports false.
func (p *Panel) Toggle(ready func() bool) {
	if p.Visible {
		p.Visible = false
		return
	}
	p.Visible = ready == nil || ready()
}

// Move shifts the selection by delta, wrapping around.
func (p *Panel) Move(delta int) {
	n := len(p.Items)
	if n == 0 {
		return
	}
	p.Selected = ((p.Selected+delta)%n + n) % n
}

func (p *Panel) Next() {
	if it := p.current(); it != nil {
		it.NextItem()
	}
}

func (p *Panel) Previous() {
	if it := p.current(); it != nil {
		it.PreviousItem()
	}
}

func (p *Panel) current() Item {
	if p.Selected < 0 || p.Selected >= len(p.Items) {
		return nil
	}
	return p.Items[p.Selected]
}

// Text renders the panel below a status block, marking the selection.
func (p *Panel) Text(status string) string {
	var sb strings.Builder
	if status != "" {
		sb.WriteString(status)
		sb.WriteString("\n\n")
	}
	for i, it := range p.Items {
		if i == p.Selected {
			sb.WriteString("> ")
		}
		sb.WriteString(it.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
