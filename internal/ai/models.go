package ai

const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.4
	DefaultMaxOutputTokens = 2000
)

// Options tunes the generative model. Zero values fall back to the defaults above.
type Options struct {
	// Model is the Gemini model name, e.g. "gemini-2.0-flash".
	Model string

	Temperature float32

	MaxOutputTokens int32

	// JSONMode asks the model to reply with application/json.
	JSONMode bool
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.MaxOutputTokens == 0 {
		o.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return o
}
