package service

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"parkwise/internal/cache"
	"parkwise/internal/db"
	"parkwise/internal/entities"
	"parkwise/internal/errors"
	"parkwise/internal/repository"
)

// LocationService covers lot administration: creating a lot together with
// its generated slots, edits, restricted deletion, and the public listing.
type LocationService struct {
	locations   repository.LocationRepository
	invalidator *cache.Invalidator
	logger      *zap.Logger
}

func NewLocationService(locations repository.LocationRepository, invalidator *cache.Invalidator, logger *zap.Logger) *LocationService {
	return &LocationService{locations: locations, invalidator: invalidator, logger: logger}
}

// Create inserts a lot and its slots S1..SN in one transaction.
func (s *LocationService) Create(ctx context.Context, req entities.LocationRequest) (*db.Location, error) {
	if req.Name == "" || req.TotalSlots <= 0 || req.HourlyRate <= 0 {
		return nil, errors.NewHTTPError(http.StatusBadRequest, "name, total_slots and hourly_rate are required")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	location := &db.Location{
		Name:       req.Name,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		TotalSlots: req.TotalSlots,
		HourlyRate: req.HourlyRate,
		IsActive:   active,
	}
	if err := s.locations.CreateWithSlots(ctx, location); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.OpCreateLocation, cache.Scope{})
	s.logger.Info("parking lot created",
		zap.Int("location_id", location.ID),
		zap.String("name", location.Name),
		zap.Int("slots", location.TotalSlots))
	return location, nil
}

// Update applies the non-empty fields of req onto the stored lot.
func (s *LocationService) Update(ctx context.Context, id int, req entities.LocationRequest) (*db.Location, error) {
	location, err := s.locations.GetByRef(ctx, "", id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		location.Name = req.Name
	}
	if req.City != "" {
		location.City = req.City
	}
	if req.State != "" {
		location.State = req.State
	}
	if req.PostalCode != "" {
		location.PostalCode = req.PostalCode
	}
	if req.Country != "" {
		location.Country = req.Country
	}
	if req.Phone != "" {
		location.Phone = req.Phone
	}
	if req.TotalSlots > 0 {
		location.TotalSlots = req.TotalSlots
	}
	if req.HourlyRate > 0 {
		location.HourlyRate = req.HourlyRate
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.OpUpdateLocation, cache.Scope{})
	return location, nil
}

// Delete removes an empty lot; lots with reservation history are refused.
func (s *LocationService) Delete(ctx context.Context, id int) error {
	if err := s.locations.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx, cache.OpDeleteLocation, cache.Scope{})
	s.logger.Info("parking lot deleted", zap.Int("location_id", id))
	return nil
}

func (s *LocationService) List(ctx context.Context) ([]entities.LotSummary, error) {
	return s.locations.List(ctx)
}
