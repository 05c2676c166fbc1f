package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/medibook/medibook-api/internal/models"
)

const textbeltURL = "https://textbelt.com/text"

// Notifier sends fire-and-forget SMS notices about bookings through the
// Textbelt API. A missing API key or patient phone number only skips the
// message; it never fails the request that triggered it.
type Notifier struct {
	apiKey string
	log    zerolog.Logger
}

func NewNotifier(apiKey string, log zerolog.Logger) *Notifier {
	return &Notifier{apiKey: apiKey, log: log}
}

func (n *Notifier) BookingConfirmed(patient *models.Patient, a *models.Appointment) {
	n.send(patient, fmt.Sprintf(
		"Appointment confirmed with Dr. %s on %s at %s.",
		a.DoctorName, a.Date, a.Slot,
	))
}

func (n *Notifier) BookingCancelled(patient *models.Patient, a *models.Appointment) {
	n.send(patient, fmt.Sprintf(
		"Your appointment with Dr. %s on %s at %s has been cancelled.",
		a.DoctorName, a.Date, a.Slot,
	))
}

func (n *Notifier) send(patient *models.Patient, message string) {
	if n == nil || n.apiKey == "" {
		return
	}
	if patient.Mobile == "" {
		n.log.Debug().Str("patientId", patient.ID.Hex()).Msg("sms skipped: patient has no mobile number")
		return
	}

	// Send in a goroutine so it doesn't block the API response.
	go n.post(patient.Mobile, message)
}

func (n *Notifier) post(phone, message string) {
	body, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     n.apiKey,
	})

	resp, err := http.Post(textbeltURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		n.log.Error().Err(err).Str("phone", phone).Msg("textbelt request failed")
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		n.log.Error().Err(err).Msg("textbelt response decode failed")
		return
	}
	if !result.Success {
		n.log.Warn().Str("phone", phone).Str("reason", result.Error).Msg("textbelt rejected sms")
		return
	}
	n.log.Info().Str("phone", phone).Msg("sms sent")
}
