package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// Scope доступ на чтение и запись событий
const Scope = gcal.CalendarEventsScope

// GoogleEvents реализация EventsAPI поверх Google Calendar v3
type GoogleEvents struct {
	service    *gcal.Service
	calendarID string
}

// NewGoogleEvents создает EventsAPI для календаря calendarID
// httpClient должен быть авторизован (см. googleauth.NewHTTPClient)
func NewGoogleEvents(ctx context.Context, httpClient *http.Client, calendarID string) (*GoogleEvents, error) {
	service, err := gcal.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInternal, err)
	}
	return &GoogleEvents{service: service, calendarID: calendarID}, nil
}

// List возвращает события в интервале, развернутые в отдельные экземпляры и отсортированные по началу
// Читает все страницы ответа
func (g *GoogleEvents) List(ctx context.Context, timeMin, timeMax time.Time) ([]*gcal.Event, error) {
	call := g.service.Events.List(g.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		MaxResults(domain.EventsPageSize).
		SingleEvents(true).
		OrderBy("startTime")

	if !timeMax.IsZero() {
		call = call.TimeMax(timeMax.Format(time.RFC3339))
	}

	var items []*gcal.Event
	err := call.Pages(ctx, func(page *gcal.Events) error {
		items = append(items, page.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get возвращает событие по ID
func (g *GoogleEvents) Get(ctx context.Context, id string) (*gcal.Event, error) {
	event, err := g.service.Events.Get(g.calendarID, id).Context(ctx).Do()
	if isNotFound(err) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// Insert создает событие
func (g *GoogleEvents) Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error) {
	return g.service.Events.Insert(g.calendarID, event).Context(ctx).Do()
}

// Delete удаляет событие
func (g *GoogleEvents) Delete(ctx context.Context, id string) error {
	err := g.service.Events.Delete(g.calendarID, id).Context(ctx).Do()
	if isNotFound(err) {
		return ErrEventNotFound
	}
	return err
}

// isNotFound 404 и 410 (событие уже удалено)
func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
}
