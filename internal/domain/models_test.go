package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocketGroupTotalCurrent(t *testing.T) {
	g := SocketGroup{Name: "Kitchen", Appliances: []Appliance{
		{Name: "Oven", Current: 10},
		{Name: "Toaster", Current: 5},
	}}
	assert.InDelta(t, 15.0, g.TotalCurrent(), 1e-9)

	g.Appliances[1].Current = 2.5
	assert.InDelta(t, 12.5, g.TotalCurrent(), 1e-9, "total must follow member readings")

	assert.Zero(t, SocketGroup{Name: "empty"}.TotalCurrent())
}

func TestApplianceActive(t *testing.T) {
	assert.True(t, Appliance{State: StateOn}.Active())
	assert.True(t, Appliance{State: StateUnknown, Current: 0.1}.Active())
	assert.True(t, Appliance{State: StateOff, Current: 2}.Active())
	assert.False(t, Appliance{State: StateOff}.Active())
	assert.False(t, Appliance{State: StateUnknown, Current: -1}.Active())
}

func TestNewHouse(t *testing.T) {
	h := NewHouse([]SocketGroup{
		{Appliances: []Appliance{{Current: 10}, {Current: 5}}},
		{Appliances: []Appliance{{Current: 30}}},
	}, 40)
	assert.InDelta(t, 45.0, h.TotalCurrent, 1e-9)
	assert.Equal(t, 40.0, h.MainLimit)
}

func TestParsePriorityAndState(t *testing.T) {
	assert.Equal(t, PriorityNonEssential, ParsePriority("non_essential"))
	assert.Equal(t, PriorityEssential, ParsePriority("ESSENTIAL"))
	assert.Equal(t, PriorityUnspecified, ParsePriority(""))
	assert.Equal(t, "non_essential", PriorityNonEssential.String())

	assert.Equal(t, StateOn, ParseState("on"))
	assert.Equal(t, StateOff, ParseState("off"))
	assert.Equal(t, StateUnknown, ParseState("maybe"))
}

func TestApplianceJSON(t *testing.T) {
	var r ApplianceReading
	err := json.Unmarshal([]byte(`{"group":"Kitchen","appliance":"Toaster","current":5,"state":"on","priority":"non_essential"}`), &r)
	assert.NoError(t, err)
	assert.Equal(t, StateOn, r.State)
	assert.Equal(t, PriorityNonEssential, r.Priority)

	out, err := json.Marshal(Appliance{Name: "Lamp", Current: 0.5})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"Lamp","current":0.5}`, string(out))
}
