package mail

import (
	"fmt"
	"time"
)

const dateLayout = "Monday, 02 Jan 2006 15:04 MST"

// VerificationEmail is sent right after registration.
func VerificationEmail(name, link string) (subject, body string) {
	subject = "Verify your email address"
	body = fmt.Sprintf(`<html><body>
<h2>Welcome, %s!</h2>
<p>Please confirm your email address to activate your account.</p>
<p><a href="%s">Verify email</a></p>
<p>If you did not register, you can ignore this message.</p>
</body></html>`, name, link)
	return subject, body
}

// EventCreatedEmail confirms creation to the organizer.
func EventCreatedEmail(organizerName, eventName, description string, date time.Time, imageURL string) (subject, body string) {
	subject = fmt.Sprintf("Event Created Successfully: %s", eventName)
	body = fmt.Sprintf(`<html><body>
<h2>Hi %s,</h2>
<p>Your event <strong>%s</strong> is live.</p>
<p>%s</p>
<p>Scheduled for %s.</p>%s
</body></html>`, organizerName, eventName, description, date.Format(dateLayout), imageTag(imageURL))
	return subject, body
}

// EventDeletedEmail notifies an active registrant that the event was
// cancelled.
func EventDeletedEmail(recipientName, eventName string, date time.Time) (subject, body string) {
	subject = fmt.Sprintf("Event Cancelled: %s", eventName)
	body = fmt.Sprintf(`<html><body>
<h2>Hi %s,</h2>
<p>The event <strong>%s</strong>, scheduled for %s, has been cancelled.</p>
<p>We are sorry for the inconvenience.</p>
</body></html>`, recipientName, eventName, date.Format(dateLayout))
	return subject, body
}

// SubscriptionCreatedEmail confirms a registration.
func SubscriptionCreatedEmail(userName, eventName string, date time.Time, imageURL string) (subject, body string) {
	subject = fmt.Sprintf("Registration Confirmed - %s", eventName)
	body = fmt.Sprintf(`<html><body>
<h2>Hi %s,</h2>
<p>You are registered for <strong>%s</strong> on %s.</p>
<p>A calendar invite is attached.</p>%s
</body></html>`, userName, eventName, date.Format(dateLayout), imageTag(imageURL))
	return subject, body
}

// SubscriptionCancelledEmail confirms a cancellation.
func SubscriptionCancelledEmail(userName, eventName string, date time.Time) (subject, body string) {
	subject = fmt.Sprintf("Subscription Cancelled - %s", eventName)
	body = fmt.Sprintf(`<html><body>
<h2>Hi %s,</h2>
<p>Your registration for <strong>%s</strong> on %s has been cancelled.</p>
</body></html>`, userName, eventName, date.Format(dateLayout))
	return subject, body
}

// AccountDeletedEmail confirms account removal.
func AccountDeletedEmail(name string) (subject, body string) {
	subject = "Your Account Has Been Successfully Deleted"
	body = fmt.Sprintf(`<html><body>
<h2>Goodbye, %s.</h2>
<p>Your account and its data have been deactivated.</p>
</body></html>`, name)
	return subject, body
}

func imageTag(url string) string {
	if url == "" {
		return ""
	}
	return fmt.Sprintf(`<p><img src="%s" alt="event image" width="480"/></p>`, url)
}
