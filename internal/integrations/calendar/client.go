package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/tkardach/SwimClubServer/internal/domain"
	"github.com/tkardach/SwimClubServer/pkg/types"
)

const metricsService = "calendar"

// Client адаптер хранилища бронирований: каждое бронирование - событие календаря
type Client struct {
	api      EventsAPI
	location *time.Location
	metrics  Metrics
	log      Logger
}

// NewClient создает новый экземпляр клиента календаря
// Все даты интерпретируются в часовом поясе location
func NewClient(api EventsAPI, location *time.Location, metrics Metrics, log Logger) *Client {
	if location == nil {
		location = time.UTC
	}
	return &Client{
		api:      api,
		location: location,
		metrics:  metrics,
		log:      log,
	}
}

// GetEventsForRange получает события в интервале [from, to); нулевой to - без верхней границы
func (c *Client) GetEventsForRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	started := time.Now()
	items, err := c.api.List(ctx, from, to)
	c.observe("list", started, err)
	if err != nil {
		c.log.Error("Calendar: failed to list events from %s to %s: %v", from.Format(time.RFC3339), to.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: list events: %v", ErrInternal, err)
	}

	events := make([]domain.Event, 0, len(items))
	for _, item := range items {
		event, err := c.toDomain(item)
		if err != nil {
			c.log.Warn("Calendar: skipping event id=%s: %v", item.Id, err)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// GetEventsForDate получает все события за дату
func (c *Client) GetEventsForDate(ctx context.Context, date time.Time) ([]domain.Event, error) {
	from := c.midnight(date)
	return c.GetEventsForRange(ctx, from, from.AddDate(0, 0, 1))
}

// GetEventsForDateAndTime получает события, пересекающие интервал от startTime в startDate до endTime в endDate
func (c *Client) GetEventsForDateAndTime(
	ctx context.Context,
	startDate, endDate time.Time,
	startTime, endTime types.NumericTime,
) ([]domain.Event, error) {
	return c.GetEventsForRange(ctx, startTime.On(startDate, c.location), endTime.On(endDate, c.location))
}

// GetEventsForMember получает события участника начиная с даты from
func (c *Client) GetEventsForMember(ctx context.Context, certificateNumber string, from time.Time) ([]domain.Event, error) {
	events, err := c.GetEventsForRange(ctx, c.midnight(from), time.Time{})
	if err != nil {
		return nil, err
	}
	return domain.FilterByMember(events, certificateNumber), nil
}

// GetEvent получает событие по ID
func (c *Client) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	started := time.Now()
	item, err := c.api.Get(ctx, id)
	c.observe("get", started, ignoreNotFound(err))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		c.log.Error("Calendar: failed to get event id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: get event: %v", ErrInternal, err)
	}

	event, err := c.toDomain(item)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// PostEvent создает одно событие
func (c *Client) PostEvent(ctx context.Context, event domain.Event) (*domain.Event, error) {
	started := time.Now()
	created, err := c.api.Insert(ctx, c.fromDomain(event))
	c.observe("insert", started, err)
	if err != nil {
		c.log.Error("Calendar: failed to post event summary=%s: %v", event.Summary, err)
		return nil, fmt.Errorf("%w: insert event: %v", ErrWriteFailed, err)
	}

	result, err := c.toDomain(created)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PostEvents создает события по одному: все или ничего
// При ошибке удаляет уже созданные события и возвращает ErrWriteFailed
func (c *Client) PostEvents(ctx context.Context, events []domain.Event) ([]domain.Event, error) {
	created := make([]domain.Event, 0, len(events))

	for i, event := range events {
		posted, err := c.PostEvent(ctx, event)
		if err != nil {
			c.log.Warn("Calendar: batch write failed at %d/%d, rolling back %d events", i+1, len(events), len(created))
			if rbErr := c.rollback(ctx, created); rbErr != nil {
				return nil, errors.Join(err, rbErr)
			}
			return nil, err
		}
		created = append(created, *posted)
	}

	return created, nil
}

// DeleteEvent удаляет событие по ID
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	started := time.Now()
	err := c.api.Delete(ctx, id)
	c.observe("delete", started, ignoreNotFound(err))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return ErrEventNotFound
		}
		c.log.Error("Calendar: failed to delete event id=%s: %v", id, err)
		return fmt.Errorf("%w: delete event: %v", ErrInternal, err)
	}
	return nil
}

// rollback удаляет созданные события, продолжая после ошибок
func (c *Client) rollback(ctx context.Context, created []domain.Event) error {
	// Откат должен завершиться даже при отмене запроса
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for _, event := range created {
		if err := c.DeleteEvent(ctx, event.ID); err != nil {
			c.log.Error("Calendar: rollback failed for event id=%s: %v", event.ID, err)
			errs = append(errs, fmt.Errorf("rollback event %s: %w", event.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Client) midnight(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location)
}

func (c *Client) observe(operation string, started time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveExternalCall(metricsService, operation, started, err)
}

func (c *Client) fromDomain(event domain.Event) *gcal.Event {
	tz := c.location.String()

	attendees := make([]*gcal.EventAttendee, 0, len(event.Attendees))
	for _, email := range event.Attendees {
		if email == "" {
			continue
		}
		attendees = append(attendees, &gcal.EventAttendee{Email: email})
	}

	return &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start: &gcal.EventDateTime{
			DateTime: event.Start.In(c.location).Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &gcal.EventDateTime{
			DateTime: event.End.In(c.location).Format(time.RFC3339),
			TimeZone: tz,
		},
		Attendees: attendees,
	}
}

func (c *Client) toDomain(item *gcal.Event) (domain.Event, error) {
	if item == nil {
		return domain.Event{}, fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}

	start, allDay, err := c.parseDateTime(item.Start)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: start of %s: %v", ErrInvalidEvent, item.Id, err)
	}
	end, _, err := c.parseDateTime(item.End)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: end of %s: %v", ErrInvalidEvent, item.Id, err)
	}

	attendees := make([]string, 0, len(item.Attendees))
	for _, a := range item.Attendees {
		attendees = append(attendees, a.Email)
	}

	return domain.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Attendees:   attendees,
	}, nil
}

// parseDateTime разбирает dateTime (RFC3339) или date (события на весь день)
func (c *Client) parseDateTime(dt *gcal.EventDateTime) (time.Time, bool, error) {
	if dt == nil {
		return time.Time{}, false, errors.New("missing date")
	}
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, false, err
		}
		return t.In(c.location), false, nil
	}
	t, err := time.ParseInLocation(domain.DateFormat, dt.Date, c.location)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrEventNotFound) {
		return nil
	}
	return err
}
