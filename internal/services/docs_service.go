package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking documents as PDF.
type DocsService struct {
	Bookings BookingService
	Loader   func(ctx context.Context, ref string) (*models.BookingDetail, error)
	Now      func() time.Time
}

// GenerateVoucher returns the voucher PDF and its file name. An unknown
// reference is a NotFoundError.
func (s DocsService) GenerateVoucher(ctx context.Context, ref string) ([]byte, string, error) {
	d, err := s.load(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	if d == nil {
		return nil, "", domain.NotFoundError{Resource: "Booking"}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "docs", "generate_voucher", "reference="+d.BookingReference)

	now := utils.NowUTC()
	if s.Now != nil {
		now = s.Now()
	}
	return buildVoucherPDF(d, now)
}

func (s DocsService) load(ctx context.Context, ref string) (*models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(ctx, ref)
	}
	return s.Bookings.GetByReference(ctx, ref)
}

func buildVoucherPDF(d *models.BookingDetail, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher "+d.BookingReference, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		"Reference      : " + d.BookingReference,
		"Issued         : " + utils.FormatDateTime(issued),
		"Status         : " + utils.FirstNonEmpty(d.BookingStatus, "-"),
		"Type           : " + utils.FirstNonEmpty(d.BookingType, "-"),
		"Source         : " + utils.FirstNonEmpty(d.BookingSource, "-"),
	}
	writeLines(pdf, header)
	pdf.Ln(4)

	section(pdf, "Customer")
	if c := d.Customer; c != nil {
		writeLines(pdf, []string{
			"Name           : " + utils.FirstNonEmpty(c.FullName, "-"),
			"Phone          : " + utils.FirstNonEmpty(c.PhoneNumber, "-"),
			"Email          : " + utils.FirstNonEmpty(c.Email, "-"),
		})
	} else {
		writeLines(pdf, []string{"-"})
	}
	pdf.Ln(4)

	section(pdf, fmt.Sprintf("Travellers (%d)", len(d.Travellers)))
	for i, t := range d.Travellers {
		line := fmt.Sprintf("%d) %s", i+1, utils.FirstNonEmpty(t.FullName, "-"))
		if t.Gender != "" {
			line += " / " + t.Gender
		}
		if t.PassportNumber != "" {
			line += " / passport " + t.PassportNumber
		}
		line += fmt.Sprintf(" / meal %s / seat %s", utils.FirstNonEmpty(t.MealPreference, "-"), utils.FirstNonEmpty(t.SeatPreference, "-"))
		writeLines(pdf, []string{line})
	}
	pdf.Ln(4)

	section(pdf, "Trip")
	writeLines(pdf, tripLines(d))
	pdf.Ln(4)

	section(pdf, "Payment")
	writeLines(pdf, []string{
		"Total          : " + utils.FormatAmount(d.Currency, d.TotalAmount),
		"Paid           : " + utils.FormatAmount(d.Currency, d.AmountPaid),
		"Due            : " + utils.FormatAmount(d.Currency, d.AmountDue),
		"Payment status : " + utils.FirstNonEmpty(d.PaymentStatus, "-"),
	})

	if d.Cancellation.IsCancelled {
		pdf.Ln(4)
		section(pdf, "Cancellation")
		writeLines(pdf, []string{"Reason         : " + utils.FirstNonEmpty(d.Cancellation.CancellationReason, "-")})
	}

	if d.Notes != nil && strings.TrimSpace(d.Notes.CustomerNote) != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Note: "+d.Notes.CustomerNote, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "voucher-" + safeFilenamePart(d.BookingReference) + ".pdf", nil
}

func tripLines(d *models.BookingDetail) []string {
	var out []string
	switch {
	case d.BookingType == models.BookingTypeCustom && d.CustomDetails != nil:
		cd := d.CustomDetails
		out = append(out,
			"Custom trip    : "+utils.FirstNonEmpty(cd.TripName, "-"),
			"Destination    : "+utils.FirstNonEmpty(cd.Destination, "-"),
			fmt.Sprintf("Days           : %d", cd.NumberOfDays),
		)
		if cd.BudgetRange != nil {
			out = append(out, fmt.Sprintf("Budget         : %s - %s",
				utils.FormatAmount(d.Currency, cd.BudgetRange.Min), utils.FormatAmount(d.Currency, cd.BudgetRange.Max)))
		}
	case d.Trip != nil:
		out = append(out, "Trip           : "+utils.FirstNonEmpty(d.Trip.TripName, "-"))
		if dest := d.Trip.Destination; dest != nil {
			out = append(out, "Destination    : "+joinNonEmpty(", ", dest.City, dest.State, dest.Country))
		}
	default:
		out = append(out, "Trip           : -")
	}

	out = append(out, "Departure      : "+utils.FormatDate(d.DepartureDate))
	if d.ReturnDate != nil {
		out = append(out, "Return         : "+utils.FormatDate(*d.ReturnDate))
	}
	return out
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func writeLines(pdf *gofpdf.Fpdf, lines []string) {
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, sep)
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
