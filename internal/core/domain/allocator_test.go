package domain_test

import (
	"testing"

	"github.com/bankgold/bankgold/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAllocatorState_Code(t *testing.T) {
	assert.Equal(t, "B700B", domain.AllocatorState{Letter: "B", Number: 700}.Code())
	assert.Equal(t, "C001C", domain.AllocatorState{Letter: "C", Number: 1}.Code())
	assert.Equal(t, "A042A", domain.AllocatorState{Letter: "A", Number: 42}.Code())
}

func TestAllocatorState_Next_Sequential(t *testing.T) {
	state := domain.AllocatorState{Letter: "B", Number: 771}

	next, ok := state.Next()
	assert.True(t, ok)
	assert.Equal(t, "B772B", next.Code())

	next, ok = next.Next()
	assert.True(t, ok)
	assert.Equal(t, "B773B", next.Code())
}

func TestAllocatorState_Next_LetterRollover(t *testing.T) {
	state := domain.AllocatorState{Letter: "B", Number: 999}

	next, ok := state.Next()
	assert.True(t, ok)
	assert.Equal(t, "C001C", next.Code())
}

func TestAllocatorState_Next_ExhaustedPastZ(t *testing.T) {
	state := domain.AllocatorState{Letter: "Z", Number: 999}

	_, ok := state.Next()
	assert.False(t, ok)
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"B700B", "B700B", false},
		{"b700b", "B700B", false},
		{"  a100a ", "A100A", false},
		{"B700C", "", true}, // letters must match
		{"B70B", "", true},
		{"B7000B", "", true},
		{"700", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := domain.NormalizeCode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			assert.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestPageForCode(t *testing.T) {
	series, page, err := domain.PageForCode("B001B")
	assert.NoError(t, err)
	assert.Equal(t, "B", series)
	assert.Equal(t, 1, page)

	_, page, err = domain.PageForCode("B100B")
	assert.NoError(t, err)
	assert.Equal(t, 1, page)

	_, page, err = domain.PageForCode("B101B")
	assert.NoError(t, err)
	assert.Equal(t, 2, page)

	series, page, err = domain.PageForCode("A750A")
	assert.NoError(t, err)
	assert.Equal(t, "A", series)
	assert.Equal(t, 8, page)
}
