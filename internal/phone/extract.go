// Package phone распознаёт российский номер телефона в свободном тексте
// комментария к заказу и приводит его к виду +7 (XXX) XXX-XX-XX.
package phone

import (
	"fmt"
	"regexp"
)

// Strategy обозначает правило, которым был найден номер.
type Strategy string

const (
	StrategyNone         Strategy = "none"
	StrategyElevenDigits Strategy = "eleven_digits"
	StrategyTenDigits    Strategy = "ten_digits"
	StrategyGroups       Strategy = "groups"
	StrategyKeyword      Strategy = "keyword"
)

var (
	elevenDigitsRegex = regexp.MustCompile(`\b(\d{11})\b`)
	tenDigitsRegex    = regexp.MustCompile(`\b(\d{10})\b`)
	// 3-3-2-(2|3) с необязательным +7/7/8 и разделителями.
	groupsRegex   = regexp.MustCompile(`(?:\+7|7|8)?[\s\-]?\(?(\d{3})\)?[\s\-]?(\d{3})[\s\-]?(\d{2})[\s\-]?(\d{2,3})`)
	// \p{Zs} добавляет неразрывные и прочие юникодные пробелы, \s в Go только ASCII.
	keywordRegex  = regexp.MustCompile(`(?i)(?:тел\.?|телефон|номер)[\s\p{Zs}:]*([+\d\s\p{Zs}\-().]{7,})`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

type extractor struct {
	name Strategy
	fn   func(string) (string, bool)
}

// Порядок важен: срабатывает первое правило, давшее отформатированный номер.
var extractors = []extractor{
	{StrategyElevenDigits, fromElevenDigits},
	{StrategyTenDigits, fromTenDigits},
	{StrategyGroups, fromGroups},
	{StrategyKeyword, fromKeyword},
}

// Extract возвращает первый распознанный номер из комментария в каноническом
// виде или пустую строку, если номер не найден.
func Extract(comment string) string {
	phone, _ := Detect(comment)
	return phone
}

// Detect работает как Extract и дополнительно сообщает, какое правило сработало.
func Detect(comment string) (string, Strategy) {
	if comment == "" {
		return "", StrategyNone
	}
	for _, e := range extractors {
		if phone, ok := e.fn(comment); ok {
			return phone, e.name
		}
	}
	return "", StrategyNone
}

func fromElevenDigits(comment string) (string, bool) {
	m := elevenDigitsRegex.FindStringSubmatch(comment)
	if m == nil {
		return "", false
	}
	return fromTrunkPrefixed(m[1])
}

func fromTenDigits(comment string) (string, bool) {
	m := tenDigitsRegex.FindStringSubmatch(comment)
	if m == nil {
		return "", false
	}
	return formatTen(m[1])
}

func fromGroups(comment string) (string, bool) {
	m := groupsRegex.FindStringSubmatch(comment)
	if m == nil {
		return "", false
	}
	last := m[4]
	if len(last) == 3 {
		last = last[1:]
	}
	return fmt.Sprintf("+7 (%s) %s-%s-%s", m[1], m[2], m[3], last), true
}

func fromKeyword(comment string) (string, bool) {
	m := keywordRegex.FindStringSubmatch(comment)
	if m == nil {
		return "", false
	}
	digits := nonDigitRegex.ReplaceAllString(m[1], "")
	if phone, ok := fromTrunkPrefixed(digits); ok {
		return phone, true
	}
	return formatTen(digits)
}

// fromTrunkPrefixed снимает ведущую 8 или 7 с 11-значного номера.
func fromTrunkPrefixed(digits string) (string, bool) {
	if len(digits) != 11 || (digits[0] != '8' && digits[0] != '7') {
		return "", false
	}
	return formatTen(digits[1:])
}

func formatTen(digits string) (string, bool) {
	if len(digits) != 10 {
		return "", false
	}
	return fmt.Sprintf("+7 (%s) %s-%s-%s", digits[0:3], digits[3:6], digits[6:8], digits[8:10]), true
}
