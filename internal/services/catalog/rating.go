package catalog

import (
	"fmt"
	"math"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// MaxStars — размер шкалы рейтинга.
const MaxStars = 5

// Stars — разбиение рейтинга на полные, половинные и пустые звёзды.
type Stars struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

// Rating — агрегированная оценка автомобиля.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Display string  `json:"display"`
	Stars   Stars   `json:"stars"`
}

// NewRating считает среднее арифметическое оценок.
func NewRating(reviews []models.Review) Rating {
	if len(reviews) == 0 {
		return Rating{Display: FormatAverage(0), Stars: StarsFor(0)}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return Rating{
		Average: avg,
		Count:   len(reviews),
		Display: FormatAverage(avg),
		Stars:   StarsFor(avg),
	}
}

// FormatAverage округляет до одного знака, половина вверх.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f", math.Floor(avg*10+0.5)/10)
}

// StarsFor: полных звёзд floor(avg), половинная если остаток >= 0.5, остальные пустые.
func StarsFor(avg float64) Stars {
	avg = math.Max(0, math.Min(avg, MaxStars))
	full := int(math.Floor(avg))
	half := 0
	if avg-float64(full) >= 0.5 {
		half = 1
	}
	return Stars{Full: full, Half: half, Empty: MaxStars - full - half}
}
