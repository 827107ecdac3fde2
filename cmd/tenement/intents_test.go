package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/tenement/internal/building"
	"github.com/talgya/tenement/internal/city"
	"github.com/talgya/tenement/internal/engine"
	"github.com/talgya/tenement/internal/tenant"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		args []string
		want engine.Intent
	}{
		{[]string{"repair", "0", "3", "20"}, engine.RepairApartment(0, 3, 20)},
		{[]string{"hallway", "1", "15"}, engine.RepairHallway(1, 15)},
		{[]string{"RENT", "0", "2", "950"}, engine.SetRent(0, 2, 950)},
		{[]string{"unlist", "0", "4"}, engine.SetListed(0, 4, false)},
		{[]string{"accept", "2"}, engine.AcceptApplication(2)},
		{[]string{"marketing", "0", "social_media"}, engine.SetMarketing(0, building.MarketingSocialMedia)},
		{[]string{"hire", "0", "janitor"}, engine.HireStaff(0, building.StaffJanitor)},
		{[]string{"buy", "7", "Mortgage"}, engine.PurchaseBuilding(7, city.Mortgage)},
		{[]string{"end"}, engine.EndTurn()},
	}
	for _, tt := range tests {
		got, err := parseIntent(tt.args)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, got, tt.args)
	}
}

func TestParseIntentErrors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"demolish", "0"},
		{"repair", "0", "3"},
		{"repair", "0", "three", "20"},
		{"buy", "7", "lease"},
		{"end", "now"},
	} {
		_, err := parseIntent(args)
		assert.Error(t, err, args)
	}
}

func TestUsageListsEveryOrder(t *testing.T) {
	u := usage()
	for name := range verbs {
		assert.Contains(t, u, "  "+name)
	}
	assert.Contains(t, u, "repair <building> <apartment> <points>")
}

func TestParseArchetype(t *testing.T) {
	a, err := parseArchetype("Artist")
	require.NoError(t, err)
	assert.Equal(t, tenant.Artist, a)

	a, err = parseArchetype("elderly")
	require.NoError(t, err)
	assert.Equal(t, tenant.Elderly, a)

	_, err = parseArchetype("banker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student, professional, artist, family, elderly")
}
