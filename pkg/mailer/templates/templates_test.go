package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() EmailData {
	return EmailData{
		Name:         "Ann",
		Email:        "ann@example.com",
		CompanyName:  "CustomTee",
		SupportURL:   "https://customtee.example/support",
		DashboardURL: "https://customtee.example/dashboard",
	}
}

func TestRenderApplicationTemplates(t *testing.T) {
	for _, name := range []string{ApplicationReceived, ApplicationApproved, ApplicationRejected} {
		t.Run(name, func(t *testing.T) {
			subject, text, html, err := Render(name, sampleData())
			require.NoError(t, err)
			assert.NotEmpty(t, strings.TrimSpace(subject))
			assert.Contains(t, text, "Ann")
			assert.Contains(t, text, "https://customtee.example/dashboard")
			assert.Contains(t, html, "https://customtee.example/dashboard")
		})
	}
}

func TestRenderRejectedIncludesNotes(t *testing.T) {
	data := sampleData()
	data.Notes = "Portfolio needs more recent work."

	_, text, html, err := Render(ApplicationRejected, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Portfolio needs more recent work.")
	assert.Contains(t, html, "Portfolio needs more recent work.")
}

func TestRenderFallsBackToDefaultName(t *testing.T) {
	data := sampleData()
	data.Name = ""

	_, text, _, err := Render(ApplicationReceived, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Hi there")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("password_reset", sampleData())
	assert.Error(t, err)
}

func TestToMapRoundTrip(t *testing.T) {
	m := ToMap(sampleData())
	assert.Equal(t, "Ann", m["Name"])
	assert.Equal(t, "CustomTee", m["CompanyName"])
}
