package models

import (
	"net/url"
	"strings"
)

// CarFilter — параметры поиска по каталогу. Пустые поля не участвуют в фильтрации.
type CarFilter struct {
	Brand    string `json:"brand,omitempty"`
	Model    string `json:"model,omitempty"`
	Type     string `json:"type,omitempty"`
	MinPrice string `json:"minPrice,omitempty"`
	MaxPrice string `json:"maxPrice,omitempty"`
}

// FilterFromQuery читает фильтр из строки запроса.
func FilterFromQuery(q url.Values) CarFilter {
	return CarFilter{
		Brand:    strings.TrimSpace(q.Get("brand")),
		Model:    strings.TrimSpace(q.Get("model")),
		Type:     strings.TrimSpace(q.Get("type")),
		MinPrice: strings.TrimSpace(q.Get("minPrice")),
		MaxPrice: strings.TrimSpace(q.Get("maxPrice")),
	}
}

// IsEmpty сообщает, что ни одно поле фильтра не задано.
func (f CarFilter) IsEmpty() bool {
	return f.Brand == "" && f.Model == "" && f.Type == "" && f.MinPrice == "" && f.MaxPrice == ""
}

// Query возвращает только заполненные поля фильтра.
func (f CarFilter) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("brand", f.Brand)
	set("model", f.Model)
	set("type", f.Type)
	set("minPrice", f.MinPrice)
	set("maxPrice", f.MaxPrice)
	return q
}
