package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1+2", 3},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"-3+5", 2},
		{"--3", 3},
		{"-(2+3)", -5},
		{"+7", 7},
		{"1.5*2", 3},
		{".5+.5", 1},
		{" 8 - 2 - 1 ", 5},
		{"2*-3", -6},
		{"100/10/5", 2},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Eval(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"", ErrSyntax},
		{"1+", ErrSyntax},
		{"(1+2", ErrSyntax},
		{"1+2)", ErrSyntax},
		{"2**3", ErrSyntax},
		{"1..2", ErrSyntax},
		{".", ErrSyntax},
		{"__import__('os')", ErrSyntax},
		{"abc", ErrSyntax},
		{"1/0", ErrDivisionByZero},
		{"5/(2-2)", ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Eval(tt.in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEval_DeepNesting(t *testing.T) {
	in := ""
	for i := 0; i < 1000; i++ {
		in += "("
	}
	_, err := Eval(in + "1")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "6", Format(6))
	assert.Equal(t, "3.5", Format(3.5))
	assert.Equal(t, "-0.25", Format(-0.25))
}
