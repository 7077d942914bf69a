// Package cleaner provides the interface for transcript text cleaners
// and composition helpers. Cleaners transform raw speech-to-text output
// into text suitable for a downstream output handler.
package cleaner

// Cleaner transforms transcript text into a cleaner form.
type Cleaner interface {
	// Clean transforms the input text. Implementations are expected to
	// degrade gracefully: on internal failure they return the input (or
	// a partially cleaned form) rather than an error.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// Func adapts a plain function to the Cleaner interface.
type Func struct {
	CleanFunc func(text string) (string, error)
	FuncName  string
}

// Clean calls the wrapped function.
func (f Func) Clean(text string) (string, error) {
	return f.CleanFunc(text)
}

// Name returns the wrapped function's name.
func (f Func) Name() string {
	if f.FuncName == "" {
		return "func"
	}
	return f.FuncName
}
