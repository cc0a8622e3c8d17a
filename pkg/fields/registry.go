package fields

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
)

// Registry stores controllers by type code. Resolution never fails: a code
// with no controller dispatches to the placeholder so one unrecognized field
// cannot take the whole form down.
type Registry struct {
	mu          sync.RWMutex
	controllers map[schema.TypeCode]Controller
	placeholder Controller
}

// NewRegistry returns a registry preloaded with the built-in controllers.
func NewRegistry() *Registry {
	r := &Registry{
		controllers: make(map[schema.TypeCode]Controller),
		placeholder: ControllerFunc(runPlaceholder),
	}
	r.MustRegister(schema.TypeText, ControllerFunc(runText))
	r.MustRegister(schema.TypeDate, ControllerFunc(runDate))
	r.MustRegister(schema.TypeDropdown, ControllerFunc(runDropdown))
	r.MustRegister(schema.TypeCheckbox, ControllerFunc(runCheckbox))
	r.MustRegister(schema.TypeImage, ControllerFunc(runImage))
	r.MustRegister(schema.TypeLocation, ControllerFunc(runLocation))
	r.MustRegister(schema.TypeSignature, ControllerFunc(runSignature))
	return r
}

// Register adds a controller for a type code. Duplicates return an error.
func (r *Registry) Register(code schema.TypeCode, controller Controller) error {
	if controller == nil {
		return fmt.Errorf("fields: controller is required")
	}
	if code == schema.TypeUnknown {
		return fmt.Errorf("fields: cannot register the unknown type code")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controllers[code]; exists {
		return fmt.Errorf("fields: controller for %q already registered", code)
	}
	r.controllers[code] = controller
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(code schema.TypeCode, controller Controller) {
	if err := r.Register(code, controller); err != nil {
		panic(err)
	}
}

// Replace swaps the controller for a type code, returning the previous one
// (nil if none was registered).
func (r *Registry) Replace(code schema.TypeCode, controller Controller) Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.controllers[code]
	if controller == nil {
		delete(r.controllers, code)
	} else {
		r.controllers[code] = controller
	}
	return prev
}

// Resolve returns the controller for a type code, falling back to the
// placeholder for unknown or unregistered codes.
func (r *Registry) Resolve(code schema.TypeCode) Controller {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if controller, ok := r.controllers[code]; ok {
		return controller
	}
	return r.placeholder
}

// List returns the registered type codes in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.controllers))
	for code := range r.controllers {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	return codes
}
