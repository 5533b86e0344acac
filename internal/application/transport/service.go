package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badaskaptan/kargomarket-sub002/internal/application/listings"
	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/catalog"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Draft is a transport service as submitted by the carrier.
type Draft struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	TransportMode      string     `json:"transport_mode"`
	VehicleType        string     `json:"vehicle_type"`
	Origin             string     `json:"origin"`
	Destination        string     `json:"destination"`
	AvailableFromDate  *time.Time `json:"available_from_date"`
	AvailableUntilDate *time.Time `json:"available_until_date"`
	CapacityValue      *float64   `json:"capacity_value"`
	CapacityUnit       string     `json:"capacity_unit"`

	PlateNumber  string   `json:"plate_number"`
	ShipName     string   `json:"ship_name"`
	IMONumber    string   `json:"imo_number"`
	MMSINumber   string   `json:"mmsi_number"`
	DWTTonnage   *float64 `json:"dwt_tonnage"`
	FlightNumber string   `json:"flight_number"`
	AircraftType string   `json:"aircraft_type"`
	TrainNumber  string   `json:"train_number"`
	WagonCount   *int     `json:"wagon_count"`

	RequiredDocuments []string `json:"required_documents"`
}

// Validate collects every failure. Transport services require a title and an
// availability date; route fields are optional.
func (d *Draft) Validate() validation.Errors {
	var errs validation.Errors

	if strings.TrimSpace(d.Title) == "" {
		errs = errs.Add("title", "Title is required")
	}
	if d.AvailableFromDate == nil {
		errs = errs.Add("available_from_date", "Availability date is required")
	}

	if d.TransportMode == "" {
		errs = errs.Add("transport_mode", "Transport mode is required")
	} else if !constants.IsValidTransportMode(d.TransportMode) {
		errs = errs.Add("transport_mode", "Unknown transport mode")
	} else if d.TransportMode != constants.ModeMultimodal {
		if d.VehicleType == "" {
			errs = errs.Add("vehicle_type", "Vehicle type is required")
		} else if !catalog.IsValidVehicleType(d.TransportMode, d.VehicleType) {
			errs = errs.Add("vehicle_type", fmt.Sprintf("Vehicle type %q is not valid for %s transport", d.VehicleType, d.TransportMode))
		}
		for _, doc := range d.RequiredDocuments {
			if !catalog.IsValidDocument(d.TransportMode, doc) {
				errs = errs.Add("required_documents", fmt.Sprintf("Document %q is not on the %s checklist", doc, d.TransportMode))
			}
		}
	}

	if d.TransportMode == constants.ModeSea {
		if !validation.IsValidIMO(d.IMONumber) {
			errs = errs.Add("imo_number", "IMO number must be exactly 7 digits")
		}
		if !validation.IsValidMMSI(d.MMSINumber) {
			errs = errs.Add("mmsi_number", "MMSI number must be exactly 9 digits")
		}
	}

	if d.CapacityValue != nil && !validation.InRange(*d.CapacityValue, 0, constants.MaxWeightValue) {
		errs = errs.Add("capacity_value", "Capacity must be between 0 and 999999")
	}

	return errs
}

// CreateService validates and persists a carrier's offered capacity.
func (s *Service) CreateService(ctx context.Context, userID uuid.UUID, d Draft) (*domain.TransportService, error) {
	if userID == uuid.Nil {
		return nil, errors.New("User not found in session")
	}
	if errs := d.Validate(); len(errs) > 0 {
		return nil, errs
	}

	svc := &domain.TransportService{
		ServiceNo:          listings.NewListingNo("TS"),
		UserID:             userID,
		Title:              d.Title,
		Description:        d.Description,
		TransportMode:      d.TransportMode,
		VehicleType:        d.VehicleType,
		Origin:             d.Origin,
		Destination:        d.Destination,
		AvailableFromDate:  d.AvailableFromDate,
		AvailableUntilDate: d.AvailableUntilDate,
		CapacityValue:      d.CapacityValue,
		CapacityUnit:       d.CapacityUnit,
		PlateNumber:        d.PlateNumber,
		ShipName:           d.ShipName,
		IMONumber:          d.IMONumber,
		MMSINumber:         d.MMSINumber,
		DWTTonnage:         d.DWTTonnage,
		FlightNumber:       d.FlightNumber,
		AircraftType:       d.AircraftType,
		TrainNumber:        d.TrainNumber,
		WagonCount:         d.WagonCount,
		RequiredDocuments:  domain.NewStringList(d.RequiredDocuments),
		Status:             constants.StatusActive,
	}
	if err := s.DB.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, fmt.Errorf("Failed to create transport service: %v", err)
	}
	return svc, nil
}

// GetUserServices returns all services owned by userID, newest first.
func (s *Service) GetUserServices(ctx context.Context, userID uuid.UUID) ([]domain.TransportService, error) {
	if userID == uuid.Nil {
		return nil, errors.New("User not found in session")
	}
	var services []domain.TransportService
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// GetServiceByID returns a single transport service.
func (s *Service) GetServiceByID(ctx context.Context, serviceID uuid.UUID) (*domain.TransportService, error) {
	if serviceID == uuid.Nil {
		return nil, errors.New("service_id is required")
	}
	var svc domain.TransportService
	if err := s.DB.WithContext(ctx).Where("service_id = ?", serviceID).First(&svc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Transport service not found")
		}
		return nil, err
	}
	return &svc, nil
}

// UpdateInput is a partial update; only non-nil fields change.
type UpdateInput struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	TransportMode      *string    `json:"transport_mode"`
	VehicleType        *string    `json:"vehicle_type"`
	Origin             *string    `json:"origin"`
	Destination        *string    `json:"destination"`
	AvailableFromDate  *time.Time `json:"available_from_date"`
	AvailableUntilDate *time.Time `json:"available_until_date"`
	CapacityValue      *float64   `json:"capacity_value"`
	CapacityUnit       *string    `json:"capacity_unit"`
	PlateNumber        *string    `json:"plate_number"`
	ShipName           *string    `json:"ship_name"`
	IMONumber          *string    `json:"imo_number"`
	MMSINumber         *string    `json:"mmsi_number"`
	DWTTonnage         *float64   `json:"dwt_tonnage"`
	FlightNumber       *string    `json:"flight_number"`
	AircraftType       *string    `json:"aircraft_type"`
	TrainNumber        *string    `json:"train_number"`
	WagonCount         *int       `json:"wagon_count"`
	RequiredDocuments  []string   `json:"required_documents"`
	DocumentURLs       []string   `json:"document_urls"`
	ImageURLs          []string   `json:"image_urls"`
	Status             *string    `json:"status"`
}

// EditService applies a partial update. Owner-only. A transport-mode change
// resets vehicle type and selected documents, same rule as listings.
func (s *Service) EditService(ctx context.Context, serviceID, userID uuid.UUID, in UpdateInput) (*domain.TransportService, error) {
	svc, err := s.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsOwnedBy(userID) {
		return nil, errors.New("Unauthorized service edit")
	}

	updates := map[string]interface{}{}

	mode := svc.TransportMode
	if in.TransportMode != nil && *in.TransportMode != svc.TransportMode {
		if !constants.IsValidTransportMode(*in.TransportMode) {
			return nil, errors.New("Unknown transport mode")
		}
		mode = *in.TransportMode
		updates["transport_mode"] = mode
		updates["vehicle_type"] = ""
		updates["required_documents"] = domain.StringList("")
	}

	if in.VehicleType != nil {
		if !catalog.IsValidVehicleType(mode, *in.VehicleType) {
			return nil, fmt.Errorf("Vehicle type %q is not valid for %s transport", *in.VehicleType, mode)
		}
		updates["vehicle_type"] = *in.VehicleType
	}
	if in.RequiredDocuments != nil {
		for _, doc := range in.RequiredDocuments {
			if !catalog.IsValidDocument(mode, doc) {
				return nil, fmt.Errorf("Document %q is not on the %s checklist", doc, mode)
			}
		}
		updates["required_documents"] = domain.NewStringList(in.RequiredDocuments)
	}

	if in.IMONumber != nil {
		if !validation.IsValidIMO(*in.IMONumber) {
			return nil, errors.New("IMO number must be exactly 7 digits")
		}
		updates["imo_number"] = *in.IMONumber
	}
	if in.MMSINumber != nil {
		if !validation.IsValidMMSI(*in.MMSINumber) {
			return nil, errors.New("MMSI number must be exactly 9 digits")
		}
		updates["mmsi_number"] = *in.MMSINumber
	}

	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Origin != nil {
		updates["origin"] = *in.Origin
	}
	if in.Destination != nil {
		updates["destination"] = *in.Destination
	}
	if in.AvailableFromDate != nil {
		updates["available_from_date"] = *in.AvailableFromDate
	}
	if in.AvailableUntilDate != nil {
		updates["available_until_date"] = *in.AvailableUntilDate
	}
	if in.CapacityValue != nil {
		if !validation.InRange(*in.CapacityValue, 0, constants.MaxWeightValue) {
			return nil, errors.New("Capacity must be between 0 and 999999")
		}
		updates["capacity_value"] = *in.CapacityValue
	}
	if in.CapacityUnit != nil {
		updates["capacity_unit"] = *in.CapacityUnit
	}
	if in.PlateNumber != nil {
		updates["plate_number"] = *in.PlateNumber
	}
	if in.ShipName != nil {
		updates["ship_name"] = *in.ShipName
	}
	if in.DWTTonnage != nil {
		updates["dwt_tonnage"] = *in.DWTTonnage
	}
	if in.FlightNumber != nil {
		updates["flight_number"] = *in.FlightNumber
	}
	if in.AircraftType != nil {
		updates["aircraft_type"] = *in.AircraftType
	}
	if in.TrainNumber != nil {
		updates["train_number"] = *in.TrainNumber
	}
	if in.WagonCount != nil {
		updates["wagon_count"] = *in.WagonCount
	}
	if in.DocumentURLs != nil {
		updates["document_urls"] = svc.DocumentURLs.Union(in.DocumentURLs)
	}
	if in.ImageURLs != nil {
		updates["image_urls"] = svc.ImageURLs.Union(in.ImageURLs)
	}
	if in.Status != nil {
		if !constants.IsValidListingStatus(*in.Status) {
			return nil, errors.New("Unknown status")
		}
		updates["status"] = *in.Status
	}

	if len(updates) == 0 {
		return nil, errors.New("No valid changes provided")
	}

	if err := s.DB.WithContext(ctx).Model(svc).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.DB.WithContext(ctx).Where("service_id = ?", serviceID).First(svc)
	return svc, nil
}

// DeleteService removes a service. Idempotent: a missing id succeeds.
func (s *Service) DeleteService(ctx context.Context, serviceID, userID uuid.UUID) error {
	if serviceID == uuid.Nil {
		return errors.New("Missing service_id")
	}
	var svc domain.TransportService
	if err := s.DB.WithContext(ctx).Where("service_id = ?", serviceID).First(&svc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if !svc.IsOwnedBy(userID) {
		return errors.New("Unauthorized service delete")
	}
	return s.DB.WithContext(ctx).Delete(&svc).Error
}
