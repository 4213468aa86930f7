package pattern

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateName(t *testing.T) {
	lib := Default()

	tests := []struct {
		token string
		want  string
	}{
		{"VA", "Virginia"},
		{"Va.", "Virginia"},
		{"va", "Virginia"},
		{"Va", "Virginia"},
		{"texas", "Texas"},
		{"N.Y.", "New York"},
		{"DC,", "District of Columbia"},
		{"Narnia", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.StateName(tt.token))
		})
	}
}

func TestStateNames_SortedAndUnique(t *testing.T) {
	names := Default().StateNames()

	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "District of Columbia")

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate state %q", n)
		seen[n] = true
	}
}

func TestTitles(t *testing.T) {
	lib := Default()

	assert.True(t, lib.IsGovernmentTitle("Senator"))
	assert.True(t, lib.IsCorporateTitle("CEO"))
	assert.True(t, lib.IsTitle("Dr."))
	assert.False(t, lib.IsTitle("Plumber"))

	assert.True(t, lib.IsStateScoped("Governor"))
	assert.True(t, lib.IsCityScoped("Mayor"))
	assert.False(t, lib.IsStateScoped("Mayor"))

	assert.Equal(t, "Lieutenant Governor", lib.ExpandTitle("Lt. Gov."))
	assert.Equal(t, "CEO", lib.ExpandTitle("CEO"))

	assert.True(t, lib.IsPronoun("She"))
	assert.False(t, lib.IsPronoun("it"))
}

func TestTitleAlt_PrefersLongest(t *testing.T) {
	re := regexp.MustCompile(`\b(?:` + Default().TitleAlt + `)`)

	assert.Equal(t, "Lt. Gov.", re.FindString("Lt. Gov. Smith spoke"))
	assert.Equal(t, "Chief Executive Officer", re.FindString("Chief Executive Officer Jane Doe"))
}

func TestFormalDateline(t *testing.T) {
	lib := Default()

	m := lib.FormalDateline[0].FindStringSubmatch("RICHMOND, Va. — October 1, 2025 — The governor said.")
	require.NotNil(t, m)
	assert.Equal(t, "RICHMOND, Va.", m[1])
	assert.Equal(t, "October 1, 2025", m[2])

	m = lib.FormalDateline[1].FindStringSubmatch("AUSTIN, TX (March 3, 2025) Acme Corp today")
	require.NotNil(t, m)
	assert.Equal(t, "AUSTIN, TX", m[1])
	assert.Equal(t, "March 3, 2025", m[2])
}

func TestDatePatterns(t *testing.T) {
	lib := Default()

	assert.True(t, lib.DateFull.MatchString("on Oct. 1, 2025 the"))
	assert.True(t, lib.DateFull.MatchString("1 October 2025"))
	assert.False(t, lib.DateFull.MatchString("October 2025"))
	assert.True(t, lib.DatePartial.MatchString("March 3"))
	assert.True(t, lib.DateNumeric.MatchString("2025-10-01"))
	assert.True(t, lib.PureDate.MatchString("Wednesday, October 1, 2025"))
	assert.False(t, lib.PureDate.MatchString("October 1, 2025 was a good day"))
}

func TestParse_Overrides(t *testing.T) {
	data := []byte(`
titles:
  corporate:
    - Chief People Officer
attribution_verbs:
  - quipped
states:
  PR: Puerto Rico
`)
	lib, err := Parse(data)
	require.NoError(t, err)

	assert.True(t, lib.IsCorporateTitle("Chief People Officer"))
	assert.False(t, Default().IsCorporateTitle("Chief People Officer"))
	assert.Contains(t, lib.Verbs(), "quipped")
	assert.Equal(t, "Puerto Rico", lib.StateName("PR"))

	m := lib.CityState.FindStringSubmatch("San Juan, PR")
	require.NotNil(t, m)
	assert.Equal(t, "San Juan", m[1])
	assert.Equal(t, "PR", m[2])
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("titles: ["))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("institutional_words:\n  - Commonwealth\n"), 0o644))

	lib, err := Load(path)
	require.NoError(t, err)
	assert.True(t, lib.IsInstitutional("Commonwealth"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
