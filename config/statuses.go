package config

import "github.com/cornish/cellnotes/matrix"

// StatusOptions returns the configured cell status options in file order,
// or the matrix defaults when none are configured.
func (c *Config) StatusOptions() []matrix.StatusOption {
	if len(c.Statuses) == 0 {
		return matrix.DefaultStatusOptions()
	}
	opts := make([]matrix.StatusOption, 0, len(c.Statuses))
	for _, s := range c.Statuses {
		opts = append(opts, matrix.StatusOption{Name: s.Name, Code: matrix.StatusCode(s.Code)})
	}
	return opts
}
