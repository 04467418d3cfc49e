package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/money"
)

var (
	moneyPattern = regexp.MustCompile(`(\$|₹|\b(?:usd|inr|rs\.?|lkr|r\.s\.?))\s?(\d[\d,.]*)`)
	urlPattern   = regexp.MustCompile(`(https?://|www\.)\S+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\-\s]{7,}\d`)
	emailPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	wordPattern  = regexp.MustCompile(`[a-zA-Z]+`)
)

// ExtractFeatures measures text. Amounts prefixed with a known currency
// symbol are parsed into SalaryMentions; amounts that do not parse are dropped.
func ExtractFeatures(text string) valueobject.TextFeatures {
	lower := cases.Lower(language.Und).String(text)

	words := wordPattern.FindAllString(text, -1)
	caps := 0
	for _, w := range words {
		if len(w) > 2 && isUpper(w) {
			caps++
		}
	}
	wordCount := max(len(words), 1)

	return valueobject.TextFeatures{
		SalaryMentions:   salaryMentions(lower),
		LinkCount:        len(urlPattern.FindAllString(lower, -1)),
		HasPhone:         phonePattern.MatchString(text),
		HasEmail:         emailPattern.MatchString(lower),
		ExclamationCount: strings.Count(text, "!"),
		UpperRatio:       float64(caps) / float64(wordCount),
		WordCount:        wordCount,
	}
}

func salaryMentions(lower string) []money.Money {
	var out []money.Money
	for _, m := range moneyPattern.FindAllStringSubmatch(lower, -1) {
		currency, ok := money.CurrencyFromSymbol(m[1])
		if !ok {
			continue
		}
		raw := strings.TrimRight(strings.ReplaceAll(m[2], ",", ""), ".")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		out = append(out, money.New(amount, currency))
	}
	return out
}

func isUpper(w string) bool {
	for _, r := range w {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
