package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindStudentID(t *testing.T) {
	tests := []struct {
		name string
		text *Text
		want string
		ok   bool
	}{
		{
			name: "label followed by bare id",
			text: fragmentsText("Name", "Jordan", "Student ID", ":", "011221373"),
			want: "011221373",
			ok:   true,
		},
		{
			name: "label and id in one fragment",
			text: fragmentsText("Routine", "ID: 011221373"),
			want: "011221373",
			ok:   true,
		},
		{
			name: "matriculation number",
			text: fragmentsText("Matriculation: 0112213730"),
			want: "0112213730",
			ok:   true,
		},
		{
			name: "fragments accept any leading digit",
			text: fragmentsText("Roll", "123456789"),
			want: "123456789",
			ok:   true,
		},
		{
			name: "flat text requires a leading zero",
			text: &Text{Flat: "Roll 123456789\n"},
		},
		{
			name: "flat text fallback",
			text: &Text{Flat: "Roll 0123456789\n"},
			want: "0123456789",
			ok:   true,
		},
		{
			name: "too short",
			text: fragmentsText("Student ID", "01122137"),
		},
		{
			name: "nil text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindStudentID(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
