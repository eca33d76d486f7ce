// Package pages отдаёт статические информационные страницы.
package pages

import (
	"net/http"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

// Page — заголовок и текст статической страницы.
type Page struct {
	Title string
	Body  string
}

// Static — страницы подвала сайта по пути.
var Static = map[string]Page{
	"/about":     {"About Us", "Rentify offers premium self-drive cars for every journey."},
	"/faq":       {"FAQ", "Answers to common questions about booking, payment and cancellation."},
	"/terms":     {"Terms of Service", "The terms that govern the use of Rentify."},
	"/privacy":   {"Privacy Policy", "How Rentify collects and uses your data."},
	"/contact":   {"Contact Us", "Reach our support team any time."},
	"/corporate": {"Corporate Rentals", "Fleet solutions for businesses."},
}

type Handler struct {
	view handlers.View
	page Page
}

// New создаёт обработчик одной страницы.
func New(v handlers.View, p Page) *Handler {
	return &Handler{view: v, page: p}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "static", view.Page{Title: h.page.Title, Data: h.page.Body})
}

// Landing — главная страница для гостей.
type Landing struct {
	view handlers.View
}

func NewLanding(v handlers.View) *Landing {
	return &Landing{view: v}
}

func (h *Landing) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "landing", view.Page{})
}
