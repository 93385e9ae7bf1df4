package transport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryCompleted DeliveryStatus = "completed"
)

func (s DeliveryStatus) Valid() bool {
	return s == DeliveryPending || s == DeliveryInTransit || s == DeliveryCompleted
}

type Log struct {
	ID            uuid.UUID       `json:"id"`
	VehicleNo     string          `json:"vehicle_no"`
	DriverName    string          `json:"driver_name"`
	Cost          decimal.Decimal `json:"cost"`
	TransportDate time.Time       `json:"transport_date"`
	Notes         string          `json:"notes"`
	Stops         []Stop          `json:"stops"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Stop is one client delivery on a run.
type Stop struct {
	ClientID        uuid.UUID      `json:"client_id"`
	ClientName      string         `json:"client_name,omitempty"`
	DeliveryAddress string         `json:"delivery_address"`
	Status          DeliveryStatus `json:"delivery_status"`
}

type StopInput struct {
	ClientID        uuid.UUID `json:"client_id"`
	DeliveryAddress string    `json:"delivery_address"`
}

type Input struct {
	VehicleNo     string          `json:"vehicle_no"`
	DriverName    string          `json:"driver_name"`
	Cost          decimal.Decimal `json:"cost"`
	TransportDate time.Time       `json:"transport_date"`
	Notes         string          `json:"notes"`
	Stops         []StopInput     `json:"stops"`
}

func (in *Input) Normalize() error {
	in.VehicleNo = strings.ToUpper(strings.TrimSpace(in.VehicleNo))
	in.DriverName = strings.TrimSpace(in.DriverName)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.VehicleNo == "" {
		return errors.New("vehicle_no is required")
	}
	if in.Cost.IsNegative() {
		return errors.New("cost cannot be negative")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.Stops))
	for i := range in.Stops {
		s := &in.Stops[i]
		s.DeliveryAddress = strings.TrimSpace(s.DeliveryAddress)
		if s.ClientID == uuid.Nil {
			return fmt.Errorf("stop %d: client_id is required", i+1)
		}
		if _, dup := seen[s.ClientID]; dup {
			return fmt.Errorf("stop %d: client listed twice", i+1)
		}
		seen[s.ClientID] = struct{}{}
	}
	return nil
}
