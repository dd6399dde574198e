package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvite(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	invite := GenerateInvite(InviteDetails{
		UID:            "sub-1@event-registration",
		Summary:        "GopherCon",
		Description:    "Go conference",
		Start:          time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC),
		OrganizerName:  "Olga",
		OrganizerEmail: "olga@example.com",
	}, now)

	lines := strings.Split(strings.TrimSuffix(invite, "\r\n"), "\r\n")
	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-1])
	assert.Contains(t, lines, "METHOD:REQUEST")
	assert.Contains(t, lines, "UID:sub-1@event-registration")
	assert.Contains(t, lines, "DTSTAMP:20260301T120000Z")
	assert.Contains(t, lines, "DTSTART:20260615T093000Z")
	assert.Contains(t, lines, "SUMMARY:GopherCon")
	assert.Contains(t, lines, "ORGANIZER;CN=Olga:mailto:olga@example.com")

	// RFC 5545 requires CRLF terminators on every content line.
	require.True(t, strings.HasSuffix(invite, "END:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(invite, "\r\n", ""), "\n")
}

func TestGenerateInviteNonUTCStart(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	invite := GenerateInvite(InviteDetails{
		UID:     "sub-2",
		Summary: "Meetup",
		Start:   time.Date(2026, 6, 15, 10, 30, 0, 0, loc),
	}, time.Now())

	assert.Contains(t, invite, "DTSTART:20260615T093000Z")
}

func TestGenerateInviteEscapesText(t *testing.T) {
	invite := GenerateInvite(InviteDetails{
		UID:         "sub-3",
		Summary:     "Dinner; wine, cheese",
		Description: "line one\nline two",
		Start:       time.Now(),
	}, time.Now())

	assert.Contains(t, invite, `SUMMARY:Dinner\; wine\, cheese`)
	assert.Contains(t, invite, `DESCRIPTION:line one\nline two`)
}

func TestGenerateInviteOmitsEmptySections(t *testing.T) {
	invite := GenerateInvite(InviteDetails{UID: "sub-4", Summary: "Meetup", Start: time.Now()}, time.Now())
	assert.NotContains(t, invite, "DESCRIPTION:")
	assert.NotContains(t, invite, "ORGANIZER")
}
