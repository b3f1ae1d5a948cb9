package resolution

import (
	"testing"

	"github.com/muhammadchandra19/marketsim/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		assertFn func(t *testing.T, res Resolution, err error)
	}{
		{
			name:  "base resolution",
			input: "5s",
			assertFn: func(t *testing.T, res Resolution, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1, res.Multiple)
				assert.True(t, res.IsBase())
			},
		},
		{
			name:  "derived resolution",
			input: "1m",
			assertFn: func(t *testing.T, res Resolution, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 12, res.Multiple)
				assert.False(t, res.IsBase())
			},
		},
		{
			name:  "unsupported resolution",
			input: "7s",
			assertFn: func(t *testing.T, res Resolution, err error) {
				assert.Error(t, err)
				assert.True(t, errors.ErrorCodeEquals(err, errors.ErrUnsupportedResolution))
			},
		},
		{
			name:  "empty name",
			input: "",
			assertFn: func(t *testing.T, res Resolution, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Get(tc.input)
			tc.assertFn(t, res, err)
		})
	}
}

func TestIsValid(t *testing.T) {
	for _, name := range AllNames() {
		assert.True(t, IsValid(name))
	}
	assert.False(t, IsValid("2h"))
}
