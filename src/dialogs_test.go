package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want int
		err  error
	}{
		{"1", 1, nil},
		{" 42 ", 42, nil},
		{"0", 0, errPositionRange},
		{"-3", 0, errPositionRange},
		{"1.5", 0, errPositionNumber},
		{"", 0, errPositionNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePosition(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  error
	}{
		{"1.0079", 1.0079, nil},
		{"0", 0, nil},
		{" 20.1797", 20.1797, nil},
		{"-0.5", 0, errWeightRange},
		{"heavy", 0, errWeightNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseWeight(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.err, err)
		})
	}
}
