package cleaner

// NoopCleaner passes text through without modification. Use this when
// cleanup is disabled but a Cleaner is required by the pipeline.
type NoopCleaner struct{}

// NewNoop creates a new no-op cleaner.
func NewNoop() *NoopCleaner {
	return &NoopCleaner{}
}

// Clean returns the input unchanged.
func (c *NoopCleaner) Clean(text string) (string, error) {
	return text, nil
}

// Name returns the cleaner type.
func (c *NoopCleaner) Name() string {
	return "noop"
}
