package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/kelechieze/rentwheels/internal/helpers"
	"github.com/kelechieze/rentwheels/internal/models"
	"github.com/phpdave11/gofpdf"
)

// BuildBookingReceipt renders a paid booking as a PDF. The booking must have
// its Car and User associations loaded.
func BuildBookingReceipt(booking *models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RENTWHEELS RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Reference : "+booking.PaymentReference)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date      : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name  : "+booking.User.Name)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Email : "+booking.User.Email)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rental:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("%s %s (%s), %s -> %s",
		booking.Car.Make, booking.Car.CarModel, booking.Car.PlateNumber,
		booking.PickupTime.Format("2006-01-02"), booking.ReturnTime.Format("2006-01-02"),
	)
	pdf.MultiCell(0, 6, desc, "", "", false)
	pdf.Ln(2)

	lines := []string{
		"Car rental     : " + helpers.FormatNaira(booking.CarCost),
		"Driver fee     : " + helpers.FormatNaira(booking.DriverFee),
		"Service fee    : " + helpers.FormatNaira(booking.ServiceFee),
		"Discount       : -" + helpers.FormatNaira(booking.DiscountAmount),
		"Wallet applied : " + helpers.FormatNaira(booking.WalletDeduction),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+helpers.FormatNaira(booking.TotalAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this receipt together with your pickup voucher at the vendor's location.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", booking.PaymentReference)
	return buf.Bytes(), filename, nil
}
