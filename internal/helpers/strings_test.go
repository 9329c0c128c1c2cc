package helpers_test

import (
	"testing"

	"github.com/bitego/snipcart-webhook-app/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Length   int
		Expected string
	}{
		{
			Name:     "shorter_than_limit",
			Input:    "token",
			Length:   16,
			Expected: "token",
		},
		{
			Name:     "exactly_at_limit",
			Input:    "token",
			Length:   5,
			Expected: "token",
		},
		{
			Name:     "longer_than_limit",
			Input:    "a-very-long-request-token",
			Length:   10,
			Expected: "a-very-...",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, helpers.Truncate(tc.Input, tc.Length))
		})
	}
}
