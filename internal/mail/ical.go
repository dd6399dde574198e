package mail

import (
	"fmt"
	"strings"
	"time"
)

// InviteDetails describes the calendar entry attached to a subscription
// confirmation.
type InviteDetails struct {
	UID            string
	Summary        string
	Description    string
	Start          time.Time
	OrganizerName  string
	OrganizerEmail string
}

// GenerateInvite renders an RFC 5545 calendar with a single VEVENT using
// METHOD:REQUEST, suitable for an .ics attachment.
func GenerateInvite(details InviteDetails, now time.Time) string {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//Event Registration//EN")
	writeLine("METHOD:REQUEST")
	writeLine("NAME:Event Registration")
	writeLine("BEGIN:VEVENT")
	writeLine("UID:" + escapeText(details.UID))
	writeLine("DTSTAMP:" + formatUTC(now))
	writeLine("DTSTART:" + formatUTC(details.Start))
	writeLine("SUMMARY:" + escapeText(details.Summary))
	if details.Description != "" {
		writeLine("DESCRIPTION:" + escapeText(details.Description))
	}
	if details.OrganizerEmail != "" {
		writeLine(fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s", escapeText(details.OrganizerName), details.OrganizerEmail))
	}
	writeLine("END:VEVENT")
	writeLine("END:VCALENDAR")

	return b.String()
}

func formatUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}
