//go:build e2e

package e2e

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airwave-qa/wavetest/pkg/harness"
	"github.com/airwave-qa/wavetest/pkg/pages"
	"github.com/airwave-qa/wavetest/pkg/session"
)

func TestSelectClient(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Dashboard.Open())
	require.NoError(t, f.Session.SelectClient("Acme Corp"))

	text, err := f.Dashboard.ActiveClient().TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "Acme Corp")
}

func TestSelectClientNotFound(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Dashboard.Open())

	err := f.Session.SelectClient("No Such Agency")
	require.Error(t, err)

	var nfe *session.ClientNotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "No Such Agency", nfe.Name)
}

func TestCreateClientJourney(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Clients.Open())
	before, err := f.Clients.ClientRows().Count()
	require.NoError(t, err)
	require.Positive(t, before, "seeded clients should be listed")

	// unique name keeps reruns against the same server deterministic
	name := fmt.Sprintf("Soylent %d", time.Now().UnixNano()%100000)
	require.NoError(t, f.Clients.CreateClient(pages.ClientData{
		Name:     name,
		Industry: "Food",
		Website:  "https://soylent.example.com",
	}))

	require.Eventually(t, func() bool {
		count, cntErr := f.Clients.ClientRows().Count()
		return cntErr == nil && count == before+1
	}, 10*time.Second, 100*time.Millisecond, "new client row should appear")

	rows := f.Clients.ClientRows()
	count, err := rows.Count()
	require.NoError(t, err)

	var found bool
	for i := 0; i < count; i++ {
		text, txtErr := rows.Nth(i).TextContent()
		if txtErr == nil && text != "" && strings.Contains(text, name) {
			found = true
			break
		}
	}
	assert.True(t, found, "created client %q should be in the list", name)
}

func TestNavigateSections(t *testing.T) {
	f := h.NewFixture(t, harness.PreAuthenticated())

	require.NoError(t, f.Dashboard.Open())

	for _, tc := range []struct{ section, path string }{
		{"clients", "/clients"},
		{"assets", "/assets"},
		{"strategy", "/generate-enhanced"},
		{"matrix", "/matrix"},
	} {
		require.NoError(t, f.Dashboard.GoToSection(tc.section))
		require.Eventually(t, func() bool {
			return strings.Contains(f.Page.URL(), tc.path)
		}, 10*time.Second, 100*time.Millisecond, "nav to %s", tc.section)
		require.NoError(t, f.Dashboard.Open())
	}
}
