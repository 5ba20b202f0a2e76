package resolver

import (
	"go-greenhouse-autopilot/internal/form"
)

// control is the capability set of one interactive choice widget:
// enumerate what it currently offers, then select one offering by its
// visible text. New widget kinds get a new implementation here instead
// of another branch in the resolver.
type control interface {
	ListOptions() ([]string, error)
	Select(label string) error
}

// nativeSelect reads <option> elements straight from the markup.
type nativeSelect struct {
	drv Driver
	id  string
}

func (c nativeSelect) ListOptions() ([]string, error) {
	return c.drv.NativeOptionLabels(c.id)
}

func (c nativeSelect) Select(label string) error {
	return c.drv.SelectNativeOption(c.id, label)
}

// richCombobox must be clicked open before its options exist in the
// DOM, and selects by clicking the rendered option element.
type richCombobox struct {
	drv Driver
	id  string
}

func (c richCombobox) ListOptions() ([]string, error) {
	return c.drv.OpenAndListOptions(c.id)
}

func (c richCombobox) Select(label string) error {
	return c.drv.ClickOptionByText(label)
}

func controlFor(drv Driver, f form.Field) control {
	if f.Category == form.CategoryCombobox {
		return richCombobox{drv: drv, id: f.ID}
	}
	return nativeSelect{drv: drv, id: f.ID}
}
