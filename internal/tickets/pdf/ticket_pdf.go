package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"venue-booking/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateTicketPDF renders a single-page printable e-ticket for an event
// registration, embedding its QR code image.
func GenerateTicketPDF(ticket models.Ticket, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "SportsHub Event Ticket", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Registration", ticket.RegistrationRef},
		{"Event", ticket.EventName},
		{"Name", ticket.HolderName},
		{"Date", ticket.Date},
		{"Participants", fmt.Sprintf("%d", ticket.Participants)},
		{"Seats", seatList(ticket.SeatNumbers)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if len(qrPNG) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("ticket-qr", 75, pdf.GetY(), 60, 60, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + 64)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Present this ticket and the QR code at the venue entrance.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func seatList(seats []int) string {
	if len(seats) == 0 {
		return "-"
	}
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return strings.Join(parts, ", ")
}
