package model

// Decorator enriches a module definition after it has been loaded, e.g. by
// assigning default mappings or allowed units to fields that omit them.
type Decorator interface {
	Decorate(*Module) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Module) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(module *Module) error {
	return fn(module)
}
