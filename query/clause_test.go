package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJoinKind(t *testing.T) {
	tests := []struct {
		input string
		want  JoinKind
	}{
		{"inner", Inner},
		{"INNER", Inner},
		{"", Inner},
		{"left", Left},
		{"LEFT OUTER", Left},
		{"right", Right},
		{"RIGHT OUTER", Right},
		{"full", Full},
		{"FULL OUTER", Full},
		{"cross", Cross},
		{"  Left  ", Left},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseJoinKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJoinKind_Unknown(t *testing.T) {
	_, err := ParseJoinKind("sideways")
	assert.Error(t, err)
}

func TestJoinKind_SQL(t *testing.T) {
	assert.Equal(t, "INNER JOIN", Inner.sql())
	assert.Equal(t, "LEFT JOIN", Left.sql())
	assert.Equal(t, "RIGHT JOIN", Right.sql())
	assert.Equal(t, "FULL OUTER JOIN", Full.sql())
	assert.Equal(t, "CROSS JOIN", Cross.sql())
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"asc", Asc},
		{"ASC", Asc},
		{"", Asc},
		{"desc", Desc},
		{" DESC ", Desc},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseDirection_Unknown(t *testing.T) {
	_, err := ParseDirection("descending-ish")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
