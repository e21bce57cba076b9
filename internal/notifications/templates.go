package notifications

import (
	"fmt"
	"html"

	"github.com/scootly/scootly-backend/internal/bookings"
)

const bodyWrapper = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
%s
<p style="font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 16px;">
This is an automated message, please do not reply.</p>
</div>
</body>
</html>`

func requestedRiderBody(riderName, storeName string, booking bookings.BookingDTO) string {
	content := fmt.Sprintf(
		`<h2>Booking request received</h2>
<p>Hi %s,</p>
<p>Your booking request at <strong>%s</strong> from %s to %s has been received
and is awaiting confirmation by the store.</p>`,
		html.EscapeString(riderName),
		html.EscapeString(storeName),
		booking.StartDate,
		booking.EndDate,
	)
	return fmt.Sprintf(bodyWrapper, content)
}

func requestedStoreBody(storeName, riderName string, created []bookings.BookingDTO) string {
	content := fmt.Sprintf(
		`<h2>New booking request</h2>
<p>Hi %s,</p>
<p>%s requested %d scooter(s) from %s to %s. Review and confirm the booking
in your dashboard.</p>`,
		html.EscapeString(storeName),
		html.EscapeString(riderName),
		len(created),
		created[0].StartDate,
		created[0].EndDate,
	)
	return fmt.Sprintf(bodyWrapper, content)
}

func confirmedRiderBody(riderName, storeName string, booking bookings.BookingDTO) string {
	content := fmt.Sprintf(
		`<h2>Booking confirmed</h2>
<p>Hi %s,</p>
<p><strong>%s</strong> confirmed your booking from %s to %s. Enjoy the ride.</p>`,
		html.EscapeString(riderName),
		html.EscapeString(storeName),
		booking.StartDate,
		booking.EndDate,
	)
	return fmt.Sprintf(bodyWrapper, content)
}
