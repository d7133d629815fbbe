package viewport

import (
	"reflect"

	"github.com/pthm-cable/artboard/geom"
)

// Plugin is an initialized extension. Its capabilities are discovered by
// type assertion against Looper, Destroyer and SizeChangeHandler.
type Plugin any

// PluginDefinition creates a Plugin bound to a viewport.
type PluginDefinition interface {
	Init(v *Viewport) (Plugin, error)
}

// PluginFunc adapts a function to PluginDefinition.
type PluginFunc func(v *Viewport) (Plugin, error)

// Init implements PluginDefinition.
func (f PluginFunc) Init(v *Viewport) (Plugin, error) { return f(v) }

// Looper is called with every frame snapshot.
type Looper interface {
	Loop(Snapshot)
}

// LoopFunc adapts a function to Looper.
type LoopFunc func(Snapshot)

// Loop implements Looper.
func (f LoopFunc) Loop(s Snapshot) { f(s) }

// Destroyer releases plugin resources when removed.
type Destroyer interface {
	Destroy()
}

// SizeChangeHandler receives size changes of elements other than the
// container.
type SizeChangeHandler interface {
	OnSizeChange(target any, size geom.Size)
}

// Registration is one plugin added to a viewport. Passing it to
// RemovePlugin removes exactly that registration, whatever the plugin's
// type.
type Registration struct {
	Plugin Plugin
}

// Register initializes def and registers the result.
func (v *Viewport) Register(def PluginDefinition) (*Registration, error) {
	p, err := def.Init(v)
	if err != nil {
		return nil, err
	}
	r := &Registration{Plugin: p}
	v.plugins = append(v.plugins, r)
	return r, nil
}

// AddPlugin initializes def and registers the result. Plugins whose type
// is not comparable, such as LoopFunc, can only be removed through the
// Registration returned by Register.
func (v *Viewport) AddPlugin(def PluginDefinition) (Plugin, error) {
	r, err := v.Register(def)
	if err != nil {
		return nil, err
	}
	return r.Plugin, nil
}

// RemovePlugin destroys and unregisters p, which is either a Registration
// or a plugin value of a comparable type. Anything else is left in place.
func (v *Viewport) RemovePlugin(p any) {
	for i, r := range v.plugins {
		if !r.matches(p) {
			continue
		}
		if d, ok := r.Plugin.(Destroyer); ok {
			d.Destroy()
		}
		v.plugins = append(v.plugins[:i], v.plugins[i+1:]...)
		return
	}
	v.log.Debug("plugin not removed", "plugin", reflect.TypeOf(p))
}

func (r *Registration) matches(p any) bool {
	if reg, ok := p.(*Registration); ok {
		return reg == r
	}
	t := reflect.TypeOf(p)
	if t == nil || t != reflect.TypeOf(r.Plugin) || !t.Comparable() {
		return false
	}
	return r.Plugin == p
}

// Plugins returns the registered plugins in registration order.
func (v *Viewport) Plugins() []Plugin {
	out := make([]Plugin, len(v.plugins))
	for i, r := range v.plugins {
		out[i] = r.Plugin
	}
	return out
}

// Destroy destroys every plugin.
func (v *Viewport) Destroy() {
	for _, r := range v.plugins {
		if d, ok := r.Plugin.(Destroyer); ok {
			d.Destroy()
		}
	}
	v.plugins = nil
}

// NotifySizeChange forwards the size change of a non-container element to
// plugins.
func (v *Viewport) NotifySizeChange(target any, size geom.Size) {
	for _, r := range v.plugins {
		if h, ok := r.Plugin.(SizeChangeHandler); ok {
			h.OnSizeChange(target, size)
		}
	}
}
