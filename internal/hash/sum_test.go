package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Sum([]byte(tt.data)))
		})
	}
}

func TestSumDetectsChange(t *testing.T) {
	a := []byte{1, 0, 0, 0, 10, 0, 0, 0}
	b := []byte{1, 0, 0, 0, 11, 0, 0, 0}

	assert.Equal(t, Sum(a), Sum(append([]byte(nil), a...)))
	assert.NotEqual(t, Sum(a), Sum(b))
}
