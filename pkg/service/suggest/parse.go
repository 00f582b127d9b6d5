package suggest

import (
	"regexp"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
)

// Confidence reported for a parse with and without an inferred amount.
const (
	ConfidenceWithAmount    = 0.75
	ConfidenceWithoutAmount = 0.4
)

var (
	amountPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d{1,2})?`)
	datePattern   = regexp.MustCompile(`(\d{4})[年-](\d{1,2})[月-](\d{1,2})日?`)
)

var (
	incomeKeywords  = []string{"收入", "收款", "进账", "income", "salary", "received", "earned"}
	expenseKeywords = []string{"消费", "支出", "付款", "spent", "paid", "expense", "bought"}
)

type tagRule struct {
	tag      string
	keywords []string
}

var tagRules = []tagRule{
	{"餐饮", []string{"餐厅", "午餐", "晚餐", "restaurant", "lunch", "dinner"}},
	{"超市", []string{"超市", "supermarket", "grocery"}},
	{"交通", []string{"地铁", "打车", "交通", "subway", "metro", "taxi"}},
	{"工资", []string{"工资", "salary"}},
}

// Parse infers a transaction draft from free text. It never fails: fields
// it cannot infer stay nil and OccurredAt falls back to now.
func Parse(text string, now time.Time) *dto.Suggestion {
	s := &dto.Suggestion{
		OccurredAt:  now.UTC(),
		Description: text,
		Tags:        inferTags(text),
		Confidence:  ConfidenceWithoutAmount,
	}

	rest := text
	if loc := datePattern.FindStringSubmatchIndex(text); loc != nil {
		if at, ok := parseDate(text[loc[2]:loc[3]], text[loc[4]:loc[5]], text[loc[6]:loc[7]]); ok {
			s.OccurredAt = at
		}
		// Date digits must not be mistaken for the amount.
		rest = text[:loc[0]] + " " + text[loc[1]:]
	}

	var negative bool
	if m := amountPattern.FindAllString(strings.ReplaceAll(rest, ",", ""), -1); len(m) > 0 {
		last := strings.TrimPrefix(m[len(m)-1], "+")
		if cents, err := money.ParseMinorUnits(last); err == nil && cents != 0 {
			negative = cents < 0
			if negative {
				cents = -cents
			}
			s.AmountCents = &cents
			s.Confidence = ConfidenceWithAmount
		}
	}

	switch {
	case containsAny(text, incomeKeywords):
		s.Type = strPtr("INCOME")
	case containsAny(text, expenseKeywords), negative:
		s.Type = strPtr("EXPENSE")
	}
	return s
}

func parseDate(year, month, day string) (time.Time, bool) {
	at, err := time.Parse("2006-1-2", year+"-"+month+"-"+day)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

func inferTags(text string) []string {
	lower := strings.ToLower(text)
	tags := []string{}
	for _, rule := range tagRules {
		if containsAny(lower, rule.keywords) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }
