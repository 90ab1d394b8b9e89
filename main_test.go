package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jetdash/internal/backend"
	"jetdash/internal/render"
	"jetdash/internal/view"
)

func TestViewFlags_State(t *testing.T) {
	f := viewFlags{military: true, hideGround: true, sort: "altitude", order: "desc"}

	st := f.state()

	assert.True(t, st.Filter.Military)
	assert.True(t, st.Filter.HideGround)
	assert.False(t, st.Filter.Inbound)
	assert.Equal(t, view.SortAltitude, st.Sort.Field)
	assert.Equal(t, view.OrderDesc, st.Sort.Order)
}

func TestViewFlags_UnknownOrderIsAscending(t *testing.T) {
	f := viewFlags{sort: "distance", order: "sideways"}

	assert.Equal(t, view.DefaultState(), f.state())
}

func TestPrintAircraft(t *testing.T) {
	var buf bytes.Buffer
	st := view.DefaultState().Apply(view.SetMilitary(true))

	printAircraft(&buf, view.Derive(backend.DemoAircraft(), st))

	out := buf.String()
	assert.Contains(t, out, "CALLSIGN")
	assert.Contains(t, out, "MIL")
	assert.Less(t, strings.Index(out, "BAF624"), strings.Index(out, "RCH871"))
	assert.NotContains(t, out, "KLM1234")
}

func TestPrintAircraft_Empty(t *testing.T) {
	var buf bytes.Buffer

	printAircraft(&buf, nil)

	assert.Equal(t, render.EmptyText+"\n", buf.String())
}
