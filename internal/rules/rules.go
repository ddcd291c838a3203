// Package rules holds the canonical validation rule table for loan requests.
// Every field bound enforced at the request boundary is read from this table.
package rules

import (
	"strings"

	"github.com/segyhp/loan-simulator/internal/domain"
)

// Rule groups
const (
	GroupPersonalInfo    = "personalInfo"
	GroupFinancialInfo   = "financialInfo"
	GroupLoanDetails     = "loanDetails"
	GroupRateCalculation = "rateCalculation"
)

var (
	employmentStatuses = []string{
		string(domain.EmploymentStatusEmployed),
		string(domain.EmploymentStatusSelfEmployed),
		string(domain.EmploymentStatusUnemployed),
		string(domain.EmploymentStatusRetired),
	}
	loanPurposes = []string{"home_improvement", "debt_consolidation", "education", "medical", "other"}
	loanTypes    = []string{string(domain.LoanTypePersonal), string(domain.LoanTypeVehicle)}
)

var table = domain.ValidationRulesTable{
	GroupPersonalInfo: {
		"age": {
			Min:          bound(18),
			Max:          bound(65),
			Required:     true,
			ErrorMessage: "Age must be between 18 and 65",
		},
		"employmentStatus": {
			Required:     true,
			Options:      employmentStatuses,
			ErrorMessage: "Please select your employment status",
		},
		"employmentDuration": {
			Min:          bound(3),
			Required:     true,
			ErrorMessage: "Minimum 3 months employment required",
		},
	},
	GroupFinancialInfo: {
		"monthlyIncome": {
			Min:          bound(5000),
			Required:     true,
			ErrorMessage: "Minimum monthly income of R5,000 required",
		},
		"monthlyExpenses": {
			Min:          bound(0),
			Required:     true,
			ErrorMessage: "Please enter your monthly expenses",
		},
		"existingDebt": {
			Min:          bound(0),
			Required:     false,
			ErrorMessage: "Existing debt cannot be negative",
		},
		"creditScore": {
			Min:          bound(300),
			Max:          bound(850),
			Required:     false,
			ErrorMessage: "Credit score must be between 300 and 850",
		},
	},
	GroupLoanDetails: {
		"requestedAmount": {
			Min:          bound(5000),
			Max:          bound(300000),
			Required:     true,
			ErrorMessage: "Loan amount must be between R5,000 and R300,000",
		},
		"loanTerm": {
			Min:          bound(6),
			Max:          bound(60),
			Required:     true,
			ErrorMessage: "Loan term must be between 6 and 60 months",
		},
		"loanPurpose": {
			Required:     true,
			Options:      loanPurposes,
			ErrorMessage: "Please select a loan purpose",
		},
	},
	GroupRateCalculation: {
		"loanAmount": {
			Min:          bound(5000),
			Required:     true,
			ErrorMessage: "Minimum amount is R5,000",
		},
		"loanTerm": {
			Min:          bound(6),
			Max:          bound(72),
			Required:     true,
			ErrorMessage: "Loan term must be between 6 and 72 months",
		},
		"creditScore": {
			Min:          bound(300),
			Max:          bound(850),
			Required:     true,
			ErrorMessage: "Credit score must be between 300 and 850",
		},
		"loanType": {
			Required:     true,
			Options:      loanTypes,
			ErrorMessage: "Please select a loan type",
		},
	},
}

func bound(v float64) *float64 {
	return &v
}

// Table returns a copy of the rule table. Callers may modify the copy freely.
func Table() domain.ValidationRulesTable {
	out := make(domain.ValidationRulesTable, len(table))
	for group, fields := range table {
		copied := make(map[string]domain.ValidationRule, len(fields))
		for name, rule := range fields {
			copied[name] = copyRule(rule)
		}
		out[group] = copied
	}
	return out
}

// Lookup returns the rule registered under "group.field"
func Lookup(key string) (domain.ValidationRule, bool) {
	rule, ok := lookup(key)
	if !ok {
		return domain.ValidationRule{}, false
	}
	return copyRule(rule), true
}

// lookup returns the shared table entry; the result must not be modified.
func lookup(key string) (domain.ValidationRule, bool) {
	group, field, ok := strings.Cut(key, ".")
	if !ok {
		return domain.ValidationRule{}, false
	}
	rule, ok := table[group][field]
	return rule, ok
}

func copyRule(rule domain.ValidationRule) domain.ValidationRule {
	if rule.Min != nil {
		rule.Min = bound(*rule.Min)
	}
	if rule.Max != nil {
		rule.Max = bound(*rule.Max)
	}
	if rule.Options != nil {
		rule.Options = append([]string(nil), rule.Options...)
	}
	return rule
}
