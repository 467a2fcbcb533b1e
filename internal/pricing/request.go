package pricing

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LogisticsRequest is the freight forwarding payload.
type LogisticsRequest struct {
	LoadingPort      string `json:"loading_port" validate:"required"`
	DischargingPort  string `json:"discharging_port" validate:"required"`
	Container20      int    `json:"container_20" validate:"min=0"`
	Container40      int    `json:"container_40" validate:"min=0"`
	CargoDescription string `json:"cargo_description"`
	CargoReadyDate   string `json:"cargo_ready_date"`
}

// TotalContainers returns the summed container count across size classes.
func (r LogisticsRequest) TotalContainers() int {
	return r.Container20 + r.Container40
}

// AgencyRequest is the shipping agency payload, shared by the quick estimate
// and the detailed disbursement calculators.
type AgencyRequest struct {
	PortOfCall    string    `json:"port_of_call" validate:"required"`
	VesselName    string    `json:"vessel_name"`
	GRT           int       `json:"grt" validate:"required,gt=0"`
	DWT           int       `json:"dwt" validate:"required,gt=0"`
	LOA           float64   `json:"loa" validate:"required,gt=0"`
	ArrivalDate   time.Time `json:"arrival_date" validate:"required"`
	DepartureDate time.Time `json:"departure_date" validate:"required"`
}

// StayDays returns the whole days between arrival and departure, with a
// minimum of one.
func (r AgencyRequest) StayDays() int64 {
	days := int64(r.DepartureDate.Sub(r.ArrivalDate).Hours() / 24)
	if days <= 0 {
		return 1
	}
	return days
}

// CharteringRequest is the chartering/broking payload.
type CharteringRequest struct {
	LoadingPort     string `json:"loading_port" validate:"required"`
	DischargingPort string `json:"discharging_port" validate:"required"`
	CharterType     string `json:"charter_type"`
	CargoType       string `json:"cargo_type"`
	LaycanStart     string `json:"laycan_start"`
	LaycanEnd       string `json:"laycan_end"`
}

func decodePayload[T any](raw []byte) (T, error) {
	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode service payload")
	}
	if err := validate.Struct(payload); err != nil {
		return payload, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service payload")
	}
	return payload, nil
}

// DecodeLogisticsRequest parses and validates a freight forwarding payload.
func DecodeLogisticsRequest(raw []byte) (LogisticsRequest, error) {
	return decodePayload[LogisticsRequest](raw)
}

// DecodeAgencyRequest parses and validates a shipping agency payload,
// rejecting unknown ports up front.
func DecodeAgencyRequest(raw []byte) (AgencyRequest, error) {
	req, err := decodePayload[AgencyRequest](raw)
	if err != nil {
		return req, err
	}
	if _, err := enums.ParsePort(req.PortOfCall); err != nil {
		return req, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service payload")
	}
	return req, nil
}

// DecodeCharteringRequest parses and validates a chartering payload.
func DecodeCharteringRequest(raw []byte) (CharteringRequest, error) {
	return decodePayload[CharteringRequest](raw)
}
