package view

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

func (v *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"app":            func() string { return v.opts.AppName },
		"checkoutScript": func() string { return v.opts.CheckoutScript },
		"money":          Money,
		"date":           FormatDate,
		"seq":            seq,
		"plural":         plural,
		"today":          func() string { return time.Now().Format(models.DateLayout) },
	}
}

// Money форматирует сумму с разделителями тысяч и не более чем двумя знаками
// после запятой: 1234.5 → "1,234.5".
func Money(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}

// FormatDate — "Jan 2, 2006" для дат и отметок времени; пустая строка для нулевых.
func FormatDate(v any) string {
	var t time.Time
	switch d := v.(type) {
	case models.Date:
		t = d.Time
	case models.Timestamp:
		t = d.Time
	case time.Time:
		t = d
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func seq(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
