package domain

// ValidationRule describes the accepted values of a single input field
type ValidationRule struct {
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Required     bool     `json:"required"`
	Options      []string `json:"options,omitempty"`
	ErrorMessage string   `json:"errorMessage"`
}

// ValidationRulesTable groups rules by request section, then by field name
type ValidationRulesTable map[string]map[string]ValidationRule
