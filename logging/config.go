package logging

// Config controls the router: which categories pass, how deep the sink
// queues are, and per-sink settings.
type Config struct {
	// BufferSize is the per-sink queue depth. Zero means the default.
	BufferSize int `json:"bufferSize"`
	// Categories whitelists event categories. Empty means everything.
	Categories []string `json:"categories,omitempty"`
	// Sinks names the sinks the router should attach. Empty means all
	// sinks handed to NewRouter.
	Sinks []string `json:"sinks,omitempty"`
	// Fields is attached to every event the router forwards.
	Fields map[string]any `json:"fields,omitempty"`

	Console ConsoleConfig `json:"console"`
	JSON    JSONConfig    `json:"json"`
}

// ConsoleConfig tunes the human-readable sink.
type ConsoleConfig struct {
	// MinSeverity drops events below the threshold. Defaults to debug.
	MinSeverity Severity `json:"minSeverity"`
	// NoColor disables ANSI colours in the console output.
	NoColor bool `json:"noColor"`
}

// JSONConfig tunes the JSON-lines sink.
type JSONConfig struct {
	// Path is the file the sink appends to.
	Path string `json:"path"`
}

const defaultBufferSize = 256

// DefaultConfig returns a config that forwards every category to every
// attached sink.
func DefaultConfig() Config {
	return Config{BufferSize: defaultBufferSize}
}

// HasSink reports whether the config names the sink, treating an empty
// list as "attach everything".
func (c Config) HasSink(name string) bool {
	if len(c.Sinks) == 0 {
		return true
	}
	for _, sink := range c.Sinks {
		if sink == name {
			return true
		}
	}
	return false
}

// allowsCategory mirrors HasSink for categories.
func (c Config) allowsCategory(category string) bool {
	if len(c.Categories) == 0 {
		return true
	}
	for _, allowed := range c.Categories {
		if allowed == category {
			return true
		}
	}
	return false
}

// CloneFields copies the static fields map so callers can mutate their
// copy without racing the router.
func (c Config) CloneFields() map[string]any {
	if len(c.Fields) == 0 {
		return nil
	}
	copied := make(map[string]any, len(c.Fields))
	for k, v := range c.Fields {
		copied[k] = v
	}
	return copied
}
