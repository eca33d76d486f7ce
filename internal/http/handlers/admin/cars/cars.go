// Package cars управляет автопарком: список, создание и изменение
// автомобиля с изображением, удаление с подтверждением.
package cars

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/rentify-web/internal/http/handlers"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
	"github.com/magabrotheeeer/rentify-web/internal/lib/validation"
	"github.com/magabrotheeeer/rentify-web/internal/models"
	"github.com/magabrotheeeer/rentify-web/internal/services/admin"
	"github.com/magabrotheeeer/rentify-web/internal/view"
)

const (
	back = "/admin/cars"

	Saved   = "Car saved."
	Deleted = "Car deleted."

	// MaxImageSize — предельный размер загружаемого изображения.
	MaxImageSize = 5 << 20
	// maxFormSize — предел всего тела формы: изображение плюс текстовые поля.
	maxFormSize = MaxImageSize + 1<<20
)

var errImageTooLarge = errors.New("image is too large")

type Service interface {
	Cars(ctx context.Context) ([]models.Car, error)
	Car(ctx context.Context, id int64) (*models.Car, error)
	SaveCar(ctx context.Context, actor string, id int64, in models.CarInput, img *models.Image) (*models.Car, error)
	DeleteCar(ctx context.Context, actor string, id int64, confirmed bool) error
}

type Handler struct {
	log   *slog.Logger
	admin Service
	view  handlers.View
}

func New(log *slog.Logger, svc Service, v handlers.View) *Handler {
	return &Handler{log: log, admin: svc, view: v}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List показывает автопарк.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.cars.list")

	cars, err := h.admin.Cars(r.Context())
	if err != nil {
		log.Error("failed to load cars", sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Error(w, r, handlers.StatusFor(err), admin.LoadFailedMessage)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_cars", view.Page{Title: "Manage Fleet", Data: cars})
}

// NewForm показывает пустую форму.
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "admin_car_form", view.Page{
		Title: "Add Car",
		Data:  view.CarFormData{Input: models.CarInput{Available: true}},
	})
}

// Edit показывает форму существующего автомобиля.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.cars.edit")

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "Car not found.")
		return
	}
	car, err := h.admin.Car(r.Context(), id)
	if err != nil {
		log.Error("failed to load car", slog.Int64("car_id", id), sl.Err(err))
		if handlers.Expired(h.view, w, r, err) {
			return
		}
		h.view.Fail(w, r, handlers.StatusFor(err), back, admin.LoadFailedMessage)
		return
	}
	h.view.Render(w, r, http.StatusOK, "admin_car_form", view.Page{
		Title: "Edit Car",
		Data:  view.CarFormData{ID: car.ID, Input: car.Input(), ImageURL: car.ImageURL},
	})
}

// Create сохраняет новый автомобиль.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update сохраняет изменения автомобиля.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "Car not found.")
		return
	}
	h.save(w, r, id)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id int64) {
	log := h.logger(r, "handlers.admin.cars.save")

	in, img, formErr := parseForm(w, r)
	if formErr != nil {
		log.Info("invalid car form", sl.Err(formErr))
		msg, ok := validation.Message(formErr)
		if !ok {
			msg = formErr.Error()
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, id, in, msg)
		return
	}

	car, err := h.admin.SaveCar(r.Context(), handlers.Actor(r), id, in, img)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Error("failed to save car", slog.Int64("car_id", id), sl.Err(err))
		msg, ok := validation.Message(err)
		if !ok {
			msg = admin.FailureNotice(err, admin.SaveCarFailed)
		}
		h.renderForm(w, r, handlers.StatusFor(err), id, in, msg)
		return
	}
	h.done(w, r, Saved, car)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, id int64, in models.CarInput, msg string) {
	title := "Add Car"
	if id != 0 {
		title = "Edit Car"
	}
	h.view.Render(w, r, status, "admin_car_form", view.Page{
		Title: title,
		Error: msg,
		Data:  view.CarFormData{ID: id, Input: in},
	})
}

// Delete удаляет автомобиль. Без confirm=yes показывает страницу подтверждения.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.admin.cars.delete")

	id, err := handlers.ID(r, "id")
	if err != nil {
		h.view.Fail(w, r, http.StatusNotFound, back, "Car not found.")
		return
	}
	if !handlers.Confirmed(r) {
		handlers.AskConfirm(h.view, w, r, "Delete Car", admin.ConfirmDeleteCar, back)
		return
	}

	err = h.admin.DeleteCar(r.Context(), handlers.Actor(r), id, true)
	if handlers.Expired(h.view, w, r, err) {
		return
	}
	if err != nil {
		log.Error("failed to delete car", slog.Int64("car_id", id), sl.Err(err))
		h.view.Fail(w, r, handlers.StatusFor(err), back, admin.FailureNotice(err, admin.DeleteCarFailed))
		return
	}
	h.done(w, r, Deleted, nil)
}

// done завершает изменение; JSON-клиент получает перечитанный автопарк.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, notice string, fallback any) {
	data := fallback
	if view.WantsJSON(r) {
		cars, err := h.admin.Cars(r.Context())
		if err != nil {
			h.logger(r, "handlers.admin.cars.refetch").Warn("failed to refetch cars", sl.Err(err))
		} else {
			data = cars
		}
	}
	h.view.Done(w, r, back, notice, data)
}

// parseForm читает multipart-форму автомобиля. Введённые значения
// возвращаются и при ошибке, чтобы показать их в форме снова.
func parseForm(w http.ResponseWriter, r *http.Request) (models.CarInput, *models.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(MaxImageSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.CarInput{}, nil, validation.New("image", errImageTooLarge.Error())
		}
		return models.CarInput{}, nil, fmt.Errorf("parse form: %w", err)
	}

	in := models.CarInput{
		Brand:       strings.TrimSpace(r.FormValue("brand")),
		Model:       strings.TrimSpace(r.FormValue("model")),
		Type:        strings.TrimSpace(r.FormValue("type")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	in.Available, _ = strconv.ParseBool(r.FormValue("available"))

	if raw := strings.TrimSpace(r.FormValue("pricePerDay")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, nil, validation.New("pricePerDay", "Price per day must be a number.")
		}
		in.PricePerDay = price
	}

	if r.MultipartForm == nil {
		return in, nil, nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return in, nil, fmt.Errorf("read image: %w", err)
	}
	defer file.Close()

	img, err := readImage(file, header)
	if err != nil {
		return in, nil, err
	}
	return in, img, nil
}

func readImage(file multipart.File, header *multipart.FileHeader) (*models.Image, error) {
	if header.Size > MaxImageSize {
		return nil, validation.New("image", errImageTooLarge.Error())
	}
	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, validation.New("image", errImageTooLarge.Error())
	}
	ct := header.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &models.Image{Filename: header.Filename, ContentType: ct, Data: data}, nil
}
