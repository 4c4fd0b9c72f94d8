package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/session"
	"priestconnect-api/internal/utils"
)

// DocsService renders the booking confirmation PDF handed to both parties.
type DocsService struct {
	Bookings BookingService
	Profiles ProfileService

	// Loader is swappable for tests.
	Loader func(ctx context.Context, sess session.Context, bookingID string) (confirmationData, error)
}

type confirmationData struct {
	Booking         models.Booking
	PriestName      string
	Parish          string
	InstitutionName string
	ContactPerson   string
}

// GenerateConfirmation builds the PDF for one booking. Only participants may
// fetch it; everyone else gets the booking's not-found answer.
func (s DocsService) GenerateConfirmation(ctx context.Context, sess session.Context, bookingID string) ([]byte, string, error) {
	load := s.Loader
	if load == nil {
		load = s.loadConfirmationData
	}
	data, err := load(ctx, sess, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent("docs", "generate_confirmation", "booking_id="+bookingID)
	return buildConfirmationPDF(data)
}

func (s DocsService) loadConfirmationData(ctx context.Context, sess session.Context, bookingID string) (confirmationData, error) {
	b, err := s.Bookings.GetFor(ctx, sess, bookingID)
	if err != nil {
		return confirmationData{}, err
	}

	data := confirmationData{Booking: b}

	// names are decoration; missing profiles fall back to ids
	if p, err := s.Profiles.PriestProfileByUser(ctx, b.PriestID); err == nil {
		data.PriestName = p.Name
		data.Parish = p.Parish
	}
	if p, err := s.Profiles.InstitutionProfileByUser(ctx, b.InstitutionID); err == nil {
		data.InstitutionName = p.Name
		data.ContactPerson = p.ContactPerson
	}
	return data, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func serviceLabel(serviceType string) string {
	switch serviceType {
	case models.ServiceMass:
		return "Mass"
	case models.ServiceConfession:
		return "Confession"
	case models.ServicePrayerBlessings:
		return "Prayer/Blessings"
	case models.ServiceRecollectionRetreat:
		return "Recollection/Retreat"
	}
	return serviceType
}

func buildConfirmationPDF(d confirmationData) ([]byte, string, error) {
	b := d.Booking

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : %s", b.ID),
		fmt.Sprintf("Status       : %s", strings.ToUpper(b.Status)),
		fmt.Sprintf("Service      : %s", serviceLabel(b.ServiceType)),
		fmt.Sprintf("Date/Time    : %s %s", safe(b.Date, "-"), safe(b.Time, "-")),
		fmt.Sprintf("Location     : %s", safe(b.Location, "-")),
		fmt.Sprintf("Priest       : %s", safe(d.PriestName, b.PriestID)),
		fmt.Sprintf("Parish       : %s", safe(d.Parish, "-")),
		fmt.Sprintf("Institution  : %s", safe(d.InstitutionName, b.InstitutionID)),
		fmt.Sprintf("Contact      : %s", safe(d.ContactPerson, "-")),
		fmt.Sprintf("Requested at : %s", b.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if strings.TrimSpace(b.Notes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "Notes: "+b.Notes, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04")+". Status changes after this moment are not reflected.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BOOKING_%s.pdf", b.ID)
	return buf.Bytes(), filename, nil
}
