package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/magabrotheeeer/rentify-web/internal/models"
)

// ListCars возвращает весь каталог.
func (c *Client) ListCars(ctx context.Context) ([]models.Car, error) {
	var cars []models.Car
	if err := c.getJSON(ctx, "apiclient.ListCars", "/cars", nil, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// SearchCars ищет по фильтру. Пустые поля фильтра не отправляются.
func (c *Client) SearchCars(ctx context.Context, f models.CarFilter) ([]models.Car, error) {
	var cars []models.Car
	if err := c.getJSON(ctx, "apiclient.SearchCars", "/cars/search", f.Query(), &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// GetCar возвращает автомобиль по id.
func (c *Client) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	var car models.Car
	if err := c.getJSON(ctx, "apiclient.GetCar", carPath(id), nil, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// CreateCar создаёт автомобиль multipart-запросом: часть "car" с JSON и необязательная часть "image".
func (c *Client) CreateCar(ctx context.Context, in models.CarInput, img *models.Image) (*models.Car, error) {
	return c.saveCar(ctx, "apiclient.CreateCar", http.MethodPost, "/cars", in, img)
}

// UpdateCar изменяет автомобиль тем же multipart-форматом.
func (c *Client) UpdateCar(ctx context.Context, id int64, in models.CarInput, img *models.Image) (*models.Car, error) {
	return c.saveCar(ctx, "apiclient.UpdateCar", http.MethodPut, carPath(id), in, img)
}

// DeleteCar удаляет автомобиль.
func (c *Client) DeleteCar(ctx context.Context, id int64) error {
	return c.delete(ctx, "apiclient.DeleteCar", carPath(id))
}

func (c *Client) saveCar(ctx context.Context, op, method, path string, in models.CarInput, img *models.Image) (*models.Car, error) {
	body, contentType, err := carForm(in, img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var car models.Car
	err = c.do(ctx, call{
		op:          op,
		method:      method,
		path:        path,
		body:        body,
		contentType: contentType,
		lenient:     true,
	}, &car)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func carForm(in models.CarInput, img *models.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="car"`)
	h.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if err := json.NewEncoder(part).Encode(in); err != nil {
		return nil, "", err
	}

	if img != nil && len(img.Data) > 0 {
		contentType := img.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func carPath(id int64) string {
	return "/cars/" + strconv.FormatInt(id, 10)
}

// CarReviews возвращает отзывы об автомобиле.
func (c *Client) CarReviews(ctx context.Context, carID int64) ([]models.Review, error) {
	var reviews []models.Review
	q := url.Values{"carId": {strconv.FormatInt(carID, 10)}}
	if err := c.getJSON(ctx, "apiclient.CarReviews", "/reviews", q, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview оставляет отзыв от имени текущего пользователя.
func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest) error {
	return c.sendJSON(ctx, "apiclient.CreateReview", http.MethodPost, "/reviews", req, nil)
}
