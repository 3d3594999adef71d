package pipeline

import "time"

// Result is the outcome of one platform build.
type Result struct {
	Platform string `yaml:"platform"`
	Success  bool   `yaml:"success"`
	Output   string `yaml:"output,omitempty"`
	Error    string `yaml:"error,omitempty"`
	Icon     bool   `yaml:"icon,omitempty"` // built with the icon resource embedded
	Duration string `yaml:"duration"`
}

// Report aggregates the results of a run.
type Report struct {
	Version   string    `yaml:"version,omitempty"`
	CGO       bool      `yaml:"cgo"`
	StartedAt time.Time `yaml:"started_at"`
	Results   []Result  `yaml:"results"`
}

// Succeeded counts successful platform builds.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}

// OK reports whether every attempted platform succeeded.
func (r *Report) OK() bool {
	return r.Succeeded() == len(r.Results)
}
