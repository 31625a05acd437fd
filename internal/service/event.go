package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/mykafka"
	"github.com/agriconnect/marketplace/internal/transport"
)

type EventService struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// Create registers a new Lend-Hand event hosted by the calling farmer.
func (s *EventService) Create(ctx context.Context, ident auth.Identity, req transport.CreateEventRequest) (*models.Event, error) {
	if ident.Role != models.RoleFarmer {
		return nil, fmt.Errorf("%w: only farmers can create events", ErrForbidden)
	}
	if req.EventDate.IsZero() || req.TaskDescription == "" || req.RequiredVolunteers == 0 {
		return nil, fmt.Errorf("%w: event_date, task_description and required_volunteers are required", ErrValidation)
	}

	event := models.Event{
		HostFarmerID:       ident.UserID,
		EventDate:          req.EventDate,
		TaskDescription:    req.TaskDescription,
		RequiredVolunteers: req.RequiredVolunteers,
	}
	if err := s.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(event.ID), map[string]interface{}{
		"type":           "event_created",
		"event_id":       event.ID,
		"host_farmer_id": event.HostFarmerID,
	})

	return &event, nil
}

// ListUpcoming returns events from today onward, soonest first.
func (s *EventService) ListUpcoming(ctx context.Context) ([]transport.EventListing, error) {
	var rows []transport.EventListing
	err := s.DB.WithContext(ctx).
		Table("events").
		Select("events.id AS event_id, events.event_date, events.task_description, events.required_volunteers, users.name AS host_farmer_name").
		Joins("JOIN users ON users.id = events.host_farmer_id").
		Where("events.event_date >= ?", time.Now().UTC().Truncate(24*time.Hour)).
		Order("events.event_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns one event with the names of its registered volunteers.
func (s *EventService) Get(ctx context.Context, eventID uint) (*transport.EventDetail, error) {
	var listing transport.EventListing
	err := s.DB.WithContext(ctx).
		Table("events").
		Select("events.id AS event_id, events.event_date, events.task_description, events.required_volunteers, users.name AS host_farmer_name").
		Joins("JOIN users ON users.id = events.host_farmer_id").
		Where("events.id = ?", eventID).
		Scan(&listing).Error
	if err != nil {
		return nil, err
	}
	if listing.EventID == 0 {
		return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}

	var names []string
	err = s.DB.WithContext(ctx).
		Table("event_volunteers").
		Joins("JOIN users ON users.id = event_volunteers.volunteer_id").
		Where("event_volunteers.event_id = ?", eventID).
		Pluck("users.name", &names).Error
	if err != nil {
		return nil, err
	}

	detail := &transport.EventDetail{EventListing: listing, Volunteers: names}
	if detail.Volunteers == nil {
		detail.Volunteers = []string{}
	}
	return detail, nil
}

// RSVP signs the caller up for an event. The event row is read with a
// row lock so the capacity check and the insert are atomic with respect
// to concurrent RSVPs for the same event.
func (s *EventService) RSVP(ctx context.Context, ident auth.Identity, eventID uint) error {
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := withRowLock(tx).First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: event %d", ErrNotFound, eventID)
			}
			return err
		}

		var rsvps []models.EventVolunteer
		if err := tx.Where("event_id = ?", eventID).Find(&rsvps).Error; err != nil {
			return err
		}
		for _, r := range rsvps {
			if r.VolunteerID == ident.UserID {
				return fmt.Errorf("%w: you have already RSVP'd for this event", ErrConflict)
			}
		}
		if uint(len(rsvps)) >= event.RequiredVolunteers {
			return fmt.Errorf("%w: this event is already full", ErrEventFull)
		}

		rsvp := models.EventVolunteer{
			EventID:     eventID,
			VolunteerID: ident.UserID,
		}
		return tx.Create(&rsvp).Error
	})
	if txErr != nil {
		return txErr
	}

	s.publish(ctx, fmt.Sprint(eventID), map[string]interface{}{
		"type":         "rsvp_created",
		"event_id":     eventID,
		"volunteer_id": ident.UserID,
	})
	return nil
}

// RecordAttendance applies the host's attendance sheet in one
// transaction. Entries for volunteers who never registered for the event
// match zero rows and are silently skipped; the returned count tells the
// host how many rows were actually updated.
func (s *EventService) RecordAttendance(ctx context.Context, ident auth.Identity, eventID uint, entries []transport.AttendanceEntry) (int64, error) {
	if entries == nil {
		return 0, fmt.Errorf("%w: 'volunteers' array is required", ErrValidation)
	}

	var event models.Event
	if err := s.DB.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		return 0, err
	}
	if event.HostFarmerID != ident.UserID {
		return 0, fmt.Errorf("%w: you are not the host of this event", ErrForbidden)
	}

	var updated int64
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			res := tx.Model(&models.EventVolunteer{}).
				Where("event_id = ? AND volunteer_id = ?", eventID, e.VolunteerID).
				Update("attended", e.Attended)
			if res.Error != nil {
				return res.Error
			}
			updated += res.RowsAffected
		}
		return nil
	})
	if txErr != nil {
		return 0, txErr
	}

	s.publish(ctx, fmt.Sprint(eventID), map[string]interface{}{
		"type":     "attendance_updated",
		"event_id": eventID,
		"updated":  updated,
	})
	return updated, nil
}

func (s *EventService) publish(ctx context.Context, key string, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicLendHandEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_error", "topic", mykafka.TopicLendHandEvents, "error", err)
	}
}
