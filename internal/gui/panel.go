// Package gui models the tweak panel: a titled list of controllers bound to
// values the application owns. Draw lays a panel out on a ui2d context.
package gui

import "github.com/chewxy/math32"

// Item is an entry of a panel.
type Item interface {
	Label() string
}

// Panel is an ordered list of controllers.
type Panel struct {
	Title string
	Width float32
	// Closed panels only draw their title bar.
	Closed bool
	Hidden bool

	items []Item
}

// NewPanel creates an empty panel.
func NewPanel(title string) *Panel {
	return &Panel{Title: title, Width: 260}
}

// Items returns the controllers in the order they were added.
func (p *Panel) Items() []Item {
	return p.items
}

// AddFloat binds a numeric controller to target. The range defaults to
// [0, 1]. Changing the range leaves the bound value alone; it is clamped by
// the next SetValue.
func (p *Panel) AddFloat(label string, target *float32) *FloatController {
	c := &FloatController{label: label, target: target, min: 0, max: 1}
	p.items = append(p.items, c)
	return c
}

// AddButton adds a button that calls fn when clicked.
func (p *Panel) AddButton(label string, fn func()) *Button {
	b := &Button{label: label, onClick: fn}
	p.items = append(p.items, b)
	return b
}

// AddReadout adds a read-only value the application updates.
func (p *Panel) AddReadout(label string) *Readout {
	r := &Readout{label: label, text: "-"}
	p.items = append(p.items, r)
	return r
}

// Float returns the first float controller with the given label.
func (p *Panel) Float(label string) *FloatController {
	for _, it := range p.items {
		if c, ok := it.(*FloatController); ok && c.label == label {
			return c
		}
	}
	return nil
}

// Toggle opens a closed panel and closes an open one.
func (p *Panel) Toggle() {
	p.Closed = !p.Closed
}

// FloatController edits a float32 owned by the caller.
type FloatController struct {
	label    string
	target   *float32
	min, max float32
	step     float32
	onChange func(float32)
}

// Label returns the controller name.
func (c *FloatController) Label() string { return c.label }

// Min sets the lower bound.
func (c *FloatController) Min(v float32) *FloatController {
	c.min = v
	return c
}

// Max sets the upper bound.
func (c *FloatController) Max(v float32) *FloatController {
	c.max = v
	return c
}

// Step sets the increment values snap to. Zero disables snapping.
func (c *FloatController) Step(v float32) *FloatController {
	c.step = v
	return c
}

// OnChange registers the function called after every SetValue.
func (c *FloatController) OnChange(fn func(float32)) *FloatController {
	c.onChange = fn
	return c
}

// Range returns the bounds.
func (c *FloatController) Range() (min, max float32) {
	return c.min, c.max
}

// Value reads the bound field.
func (c *FloatController) Value() float32 {
	return *c.target
}

// SetValue clamps v into range, snaps it to the step, writes the bound field
// and calls the change callback with the stored value. NaN is ignored and
// SetValue reports whether the value was accepted.
func (c *FloatController) SetValue(v float32) bool {
	if math32.IsNaN(v) {
		return false
	}
	v = c.snap(clampf(v, c.min, c.max))
	*c.target = v
	if c.onChange != nil {
		c.onChange(v)
	}
	return true
}

// Fraction returns the value's position in the range as 0..1.
func (c *FloatController) Fraction() float32 {
	if c.max <= c.min {
		return 0
	}
	return clampf((*c.target-c.min)/(c.max-c.min), 0, 1)
}

// SetFraction sets the value from a 0..1 position, as a slider does.
func (c *FloatController) SetFraction(f float32) bool {
	return c.SetValue(c.min + clampf(f, 0, 1)*(c.max-c.min))
}

func (c *FloatController) snap(v float32) float32 {
	if c.step <= 0 {
		return v
	}
	v = c.min + math32.Floor((v-c.min)/c.step+0.5)*c.step
	return clampf(v, c.min, c.max)
}

// Button runs an action when clicked.
type Button struct {
	label   string
	onClick func()
}

// Label returns the button text.
func (b *Button) Label() string { return b.label }

// Click runs the action.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

// Readout displays text that only the application changes.
type Readout struct {
	label string
	text  string
}

// Label returns the readout name.
func (r *Readout) Label() string { return r.label }

// Set replaces the displayed text.
func (r *Readout) Set(text string) { r.text = text }

// Text returns the displayed text.
func (r *Readout) Text() string { return r.text }

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
