package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransisiAntrianValid(t *testing.T) {
	testCases := []struct {
		name  string
		from  StatusAntrian
		to    StatusAntrian
		valid bool
	}{
		{"waiting dipanggil", StatusWaiting, StatusCalled, true},
		{"panggil ulang", StatusCalled, StatusCalled, true},
		{"called masuk periksa", StatusCalled, StatusInProgress, true},
		{"in-progress selesai", StatusInProgress, StatusCompleted, true},
		{"waiting langsung periksa", StatusWaiting, StatusInProgress, false},
		{"waiting langsung selesai", StatusWaiting, StatusCompleted, false},
		{"completed terminal", StatusCompleted, StatusCalled, false},
		{"mundur ke waiting", StatusCalled, StatusWaiting, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, TransisiAntrianValid(tc.from, tc.to))
		})
	}
}

// Kosakata status Screening sengaja lebih sempit daripada status
// antrian: "called" dan "in-progress" sama-sama dipetakan ke
// "in-progress" di sisi screening.
func TestStatusScreeningUntuk(t *testing.T) {
	assert.Equal(t, ScreeningWaiting, StatusScreeningUntuk(StatusWaiting))
	assert.Equal(t, ScreeningInProgress, StatusScreeningUntuk(StatusCalled))
	assert.Equal(t, ScreeningInProgress, StatusScreeningUntuk(StatusInProgress))
	assert.Equal(t, ScreeningCompleted, StatusScreeningUntuk(StatusCompleted))
}
