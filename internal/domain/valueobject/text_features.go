package valueobject

import "github.com/dhxnujaK/Fraud-Alert-LK/pkg/money"

// TextFeatures are descriptive measurements of a job post. They are reported
// alongside an assessment and never change its score.
type TextFeatures struct {
	SalaryMentions   []money.Money `json:"salaryMentions"`
	LinkCount        int           `json:"linkCount"`
	HasPhone         bool          `json:"hasPhone"`
	HasEmail         bool          `json:"hasEmail"`
	ExclamationCount int           `json:"exclamationCount"`
	UpperRatio       float64       `json:"upperRatio"`
	WordCount        int           `json:"wordCount"`
}

// MaxSalary returns the largest salary mention in currency c.
func (f TextFeatures) MaxSalary(c money.Currency) (money.Money, bool) {
	return money.Max(c, f.SalaryMentions...)
}
