package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"priestconnect-api/internal/domain"
	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/session"
)

func TestGenerateConfirmation(t *testing.T) {
	svc := DocsService{
		Loader: func(_ context.Context, _ session.Context, bookingID string) (confirmationData, error) {
			return confirmationData{
				Booking: models.Booking{
					ID:            bookingID,
					InstitutionID: "u-inst",
					PriestID:      "u-priest",
					ServiceType:   models.ServiceMass,
					Date:          "2026-03-15",
					Time:          "10:30",
					Location:      "School chapel",
					Notes:         "Please arrive 15 minutes early.",
					Status:        models.StatusAccepted,
					CreatedAt:     time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
				},
				PriestName:      "Fr. Miguel Santos",
				Parish:          "Our Lady of Grace",
				InstitutionName: "San Lorenzo Parish School",
				ContactPerson:   "A. Reyes",
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateConfirmation(context.Background(), session.Context{UserID: "u-inst", Role: models.RoleInstitution}, "b-1")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	if filename != "BOOKING_b-1.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestGenerateConfirmationParticipantsOnly(t *testing.T) {
	_, bookings, _ := bookingFixture(t)
	b := requestBooking(t, bookings)

	svc := DocsService{Bookings: bookings, Profiles: ProfileService{Store: bookings.Store}}
	outsider := session.Context{UserID: "u-other", Role: models.RoleInstitution}

	_, _, err := svc.GenerateConfirmation(context.Background(), outsider, b.ID)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for outsider, got %v", err)
	}
}
