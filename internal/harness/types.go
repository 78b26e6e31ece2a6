package harness

// Exchange is one command and its rendered response.
type Exchange struct {
	// Prompt is the prompt the command was typed at.
	Prompt  string `json:"prompt"`
	Command string `json:"command"`
	Status  string `json:"status"`
	Output  string `json:"output"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Transcript holds every exchange in order.
	Transcript []Exchange `json:"transcript"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Transcript: []Exchange{},
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
