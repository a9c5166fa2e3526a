// Package clinic wraps the clinic backend REST API that owns appointment
// records. The workflow talks to it through two calls only: fetching a record
// and requesting a status transition.
package clinic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	vactypes "github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application/types"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/domain"
	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/ports"
)

// Client calls the clinic backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the clinic client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("clinic base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// envelope is the backend's generic response wrapper.
type envelope struct {
	Message string           `json:"message"`
	Data    *appointmentWire `json:"data"`
}

// FetchAppointment loads one appointment record by id.
func (c *Client) FetchAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	if id <= 0 {
		return nil, errors.New("appointment id is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/appointments/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New("clinic API returned no appointment data")
	}
	return env.Data.toDomain(), nil
}

// UpdateStatus issues a status transition. The backend answers with a message
// for the user and, usually, the refreshed record.
func (c *Client) UpdateStatus(ctx context.Context, payload vactypes.TransitionRequest) (*vactypes.TransitionResult, error) {
	if payload.AppointmentID <= 0 {
		return nil, errors.New("appointment id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode transition payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/appointments/update-status", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build transition request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	result := &vactypes.TransitionResult{Message: env.Message}
	if env.Data != nil {
		result.Appointment = env.Data.toDomain()
	}
	return result, nil
}

// Reject issues the distinguished transition to the rejected status, carrying
// free-text notes instead of stage data.
func (c *Client) Reject(ctx context.Context, id int64, notes string) (*vactypes.TransitionResult, error) {
	payload := vactypes.TransitionRequest{
		AppointmentID: id,
		Status:        int(domain.StageRejected),
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		payload.Notes = &trimmed
	}
	return c.UpdateStatus(ctx, payload)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call clinic API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read clinic API response: %w", err)
	}
	var env envelope
	// Error bodies may carry a message too; decode best-effort.
	_ = json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ports.ErrAppointmentNotFound, errorMessage(env, resp.Status))
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("clinic API error: %s", errorMessage(env, resp.Status))
	}
	return &env, nil
}

func errorMessage(env envelope, fallback string) string {
	if msg := strings.TrimSpace(env.Message); msg != "" {
		return msg
	}
	return fallback
}

// Wire shapes mirror the backend JSON; nested objects may be absent depending
// on how far the appointment has progressed.

type appointmentWire struct {
	AppointmentID int64             `json:"appointmentId"`
	Code          string            `json:"appointmentCode"`
	Status        int               `json:"appointmentStatus"`
	Pet           *petWire          `json:"pet"`
	Disease       *diseaseWire      `json:"disease"`
	Vet           *vetWire          `json:"vet"`
	Vitals        *vitalsWire       `json:"healthData"`
	Result        *resultWire       `json:"resultData"`
	VaccineBatch  *vaccineBatchWire `json:"vaccineBatch"`
	Payment       *paymentWire      `json:"payment"`
}

type petWire struct {
	PetID   int64  `json:"petId"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

type diseaseWire struct {
	DiseaseID int64  `json:"diseaseId"`
	Name      string `json:"name"`
}

type vetWire struct {
	VetID     int64          `json:"vetId"`
	Name      string         `json:"name"`
	Schedules []scheduleWire `json:"schedules"`
}

type scheduleWire struct {
	Date      string `json:"scheduleDate"`
	SlotIndex int    `json:"slotNumber"`
}

type vitalsWire struct {
	Temperature      string `json:"temperature"`
	HeartRate        string `json:"heartRate"`
	GeneralCondition string `json:"generalCondition"`
	Others           string `json:"others"`
}

type resultWire struct {
	Reaction        string `json:"reaction"`
	AppointmentDate string `json:"appointmentDate"`
	Notes           string `json:"notes"`
}

type vaccineBatchWire struct {
	VaccineBatchID int64  `json:"vaccineBatchId"`
	VaccineName    string `json:"vaccineName"`
	LotNumber      string `json:"lotNumber"`
}

type paymentWire struct {
	PaymentID     string `json:"paymentId"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
}

func (w *appointmentWire) toDomain() *domain.Appointment {
	rec := &domain.Appointment{
		ID:     w.AppointmentID,
		Code:   w.Code,
		Status: w.Status,
	}
	if w.Pet != nil {
		rec.Pet = &domain.Pet{ID: w.Pet.PetID, Name: w.Pet.Name, Species: w.Pet.Species}
	}
	if w.Disease != nil {
		rec.Disease = &domain.Disease{ID: w.Disease.DiseaseID, Name: w.Disease.Name}
	}
	if w.Vet != nil {
		vet := &domain.Vet{ID: w.Vet.VetID, Name: w.Vet.Name}
		for _, s := range w.Vet.Schedules {
			vet.Schedules = append(vet.Schedules, domain.VetSchedule{Date: s.Date, SlotIndex: s.SlotIndex})
		}
		rec.Vet = vet
	}
	if w.Vitals != nil {
		rec.Vitals = &domain.Vitals{
			Temperature:      w.Vitals.Temperature,
			HeartRate:        w.Vitals.HeartRate,
			GeneralCondition: w.Vitals.GeneralCondition,
			Others:           w.Vitals.Others,
		}
	}
	if w.Result != nil {
		rec.Result = &domain.InjectionOutcome{
			Reaction:        w.Result.Reaction,
			AppointmentDate: w.Result.AppointmentDate,
			Notes:           w.Result.Notes,
		}
	}
	if w.VaccineBatch != nil {
		rec.VaccineBatch = &domain.VaccineBatch{
			ID:          w.VaccineBatch.VaccineBatchID,
			VaccineName: w.VaccineBatch.VaccineName,
			LotNumber:   w.VaccineBatch.LotNumber,
		}
	}
	if w.Payment != nil {
		rec.Payment = &domain.Payment{
			ID:     w.Payment.PaymentID,
			Method: w.Payment.PaymentMethod,
			Status: w.Payment.PaymentStatus,
		}
	}
	return rec
}

var _ ports.ClinicBackend = (*Client)(nil)
