package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestorhq/gestor/internal/domain/client"
	"github.com/gestorhq/gestor/internal/filter"
)

var clients = []client.Client{
	{ID: "1", Company: "Tech Solutions Ltda", ContactName: "Ana", Active: true},
	{ID: "2", Company: "FinanCorp", ContactName: "Bruno", Active: true},
	{ID: "3", Company: "DataX", ContactName: "Carla", Active: false},
}

func TestSearch_MatchesAnyConfiguredField(t *testing.T) {
	out := filter.Search(clients, "tech", client.SearchFields)
	require.Len(t, out, 1)
	require.Equal(t, "Tech Solutions Ltda", out[0].Company)

	out = filter.Search(clients, "bruno", client.SearchFields)
	require.Len(t, out, 1)
	require.Equal(t, "FinanCorp", out[0].Company)
}

func TestSearch_EmptyTermReturnsAllInOrder(t *testing.T) {
	out := filter.Search(clients, "", client.SearchFields)
	require.Equal(t, clients, out)

	out = filter.Search(clients, "   ", client.SearchFields)
	require.Equal(t, clients, out)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	out := filter.Search(clients, "FINAN", client.SearchFields)
	require.Len(t, out, 1)
	require.Equal(t, "2", out[0].ID)
}

func TestSearch_NoMatch(t *testing.T) {
	out := filter.Search(clients, "zzz", client.SearchFields)
	require.Empty(t, out)
}

func TestByValue_AllSentinelPassesEverything(t *testing.T) {
	pred := filter.ByValue(filter.All, func(c client.Client) string { return c.ID })
	out := filter.Apply(clients, pred)
	require.Equal(t, clients, out)
}

func TestByValue_ExactMatch(t *testing.T) {
	pred := filter.ByValue("2", func(c client.Client) string { return c.ID })
	out := filter.Apply(clients, pred)
	require.Len(t, out, 1)
	require.Equal(t, "FinanCorp", out[0].Company)
}

func TestByFlag_ActiveInactive(t *testing.T) {
	active := filter.ByFlag("active", func(c client.Client) bool { return c.Active })
	require.Len(t, filter.Apply(clients, active), 2)

	inactive := filter.ByFlag("inactive", func(c client.Client) bool { return c.Active })
	out := filter.Apply(clients, inactive)
	require.Len(t, out, 1)
	require.Equal(t, "DataX", out[0].Company)

	all := filter.ByFlag(filter.All, func(c client.Client) bool { return c.Active })
	require.Len(t, filter.Apply(clients, all), 3)
}

func TestApply_CombinesWithAND(t *testing.T) {
	active := filter.ByFlag("active", func(c client.Client) bool { return c.Active })
	byID := filter.ByValue("1", func(c client.Client) string { return c.ID })
	out := filter.Apply(clients, active, byID)
	require.Len(t, out, 1)
	require.Equal(t, "Tech Solutions Ltda", out[0].Company)
}

func TestApply_Idempotent(t *testing.T) {
	active := filter.ByFlag("active", func(c client.Client) bool { return c.Active })
	once := filter.Apply(clients, active)
	twice := filter.Apply(once, active)
	require.Equal(t, once, twice)
}
