package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const contactRelease = `FOR IMMEDIATE RELEASE

Acme Launches Community Grant Program

AUSTIN, TX — March 3, 2025 — Acme Corp today launched a grant program for local schools.

About Acme

Acme Corp builds solar equipment for cities and towns.

Media Contact:
Jane Smith
jane@acme.com
(555) 123-4567

###
`

func TestReleaseInfo(t *testing.T) {
	e := newTestExtractor(t)

	info := e.ReleaseInfo(contactRelease)

	assert.True(t, info.HasReleaseHeader)
	assert.Equal(t, "FOR IMMEDIATE RELEASE", info.ReleaseType)
	assert.True(t, info.HasEndMarker)
	assert.Empty(t, info.Embargo)
}

func TestReleaseInfo_Embargo(t *testing.T) {
	e := newTestExtractor(t)

	info := e.ReleaseInfo("EMBARGOED UNTIL 9 A.M. ET, OCT. 1, 2025\n\nAcme Reports Record Quarter")

	assert.True(t, info.HasReleaseHeader)
	assert.Equal(t, "EMBARGOED", info.ReleaseType)
	assert.Equal(t, "EMBARGOED UNTIL 9 A.M. ET, OCT. 1, 2025", info.Embargo)
	assert.False(t, info.HasEndMarker)
}

func TestReleaseInfo_None(t *testing.T) {
	e := newTestExtractor(t)

	info := e.ReleaseInfo("Acme Reports Record Quarter\n\nRevenue grew for the fifth straight quarter.")

	assert.False(t, info.HasReleaseHeader)
	assert.Empty(t, info.ReleaseType)
}

func TestContact(t *testing.T) {
	e := newTestExtractor(t)

	info := e.Contact(contactRelease)

	assert.Equal(t, "Jane Smith", info.Name)
	assert.Equal(t, "jane@acme.com", info.Email)
	assert.Equal(t, "(555) 123-4567", info.Phone)
	assert.Equal(t, "Media Contact:\nJane Smith\njane@acme.com\n(555) 123-4567", info.Block)
	assert.Equal(t, "About Acme\nAcme Corp builds solar equipment for cities and towns.", info.Boilerplate)
}

func TestContact_None(t *testing.T) {
	e := newTestExtractor(t)

	info := e.Contact("Acme Reports Record Quarter\n\nRevenue grew for the fifth straight quarter.")

	assert.Empty(t, info.Name)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.Block)
	assert.Empty(t, info.Boilerplate)
}
