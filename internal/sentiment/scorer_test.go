package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "empty text is neutral",
			text: "",
			want: 50,
		},
		{
			name: "whitespace only is neutral",
			text: "   \n\t  ",
			want: 50,
		},
		{
			name: "no signal terms is neutral",
			text: "The kickoff meeting is scheduled for next week.",
			want: 50,
		},
		{
			name: "single negative term",
			text: "We missed the deadline.",
			want: 35,
		},
		{
			name: "single positive term",
			text: "Thanks for the quick turnaround!",
			want: 60,
		},
		{
			name: "distinct negative terms compound",
			text: "This is unacceptable. We missed the go-live and the build is broken.",
			want: 5,
		},
		{
			name: "repeated term counts once",
			text: "late late late late late",
			want: 35,
		},
		{
			name: "mixed signals net out",
			text: "Thanks for the update, but the integration is still broken.",
			want: 45,
		},
		{
			name: "matching is case insensitive",
			text: "URGENT: BROKEN deployment",
			want: 20,
		},
		{
			name: "substring matches count",
			text: "The client is frustratedly waiting.",
			want: 35,
		},
		{
			name: "clamped at lower bound",
			text: "angry mad frustrated unacceptable disappointed fail urgent broken missed late",
			want: 0,
		},
		{
			name: "clamped at upper bound",
			text: "happy great excited thanks good success love approve " +
				"happy great excited thanks good success love approve",
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.text))
		})
	}
}

func TestScoreAlwaysBounded(t *testing.T) {
	inputs := []string{
		"",
		strings.Repeat("unacceptable broken ", 50),
		strings.Repeat("happy success ", 50),
		"completely ordinary status update with nothing remarkable",
	}

	for _, text := range inputs {
		got := Score(text)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}
