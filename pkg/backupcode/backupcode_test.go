package backupcode_test

import (
	"regexp"
	"testing"

	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/backupcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codeFormat = regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}$`)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{
			name:  "Default count",
			count: backupcode.DefaultCount,
		},
		{
			name:  "Single code",
			count: 1,
		},
		{
			name:    "Zero codes",
			count:   0,
			wantErr: true,
		},
		{
			name:    "Negative count",
			count:   -3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes, err := backupcode.Generate(tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, backupcode.ErrInvalidCodeCount)
				assert.Nil(t, codes)
				return
			}

			require.NoError(t, err)
			require.Len(t, codes, tt.count)

			seen := make(map[string]bool)
			for _, code := range codes {
				assert.Regexp(t, codeFormat, code)
				assert.False(t, seen[code], "duplicate code %s", code)
				seen[code] = true
			}
		})
	}
}

func TestVerify(t *testing.T) {
	codes, err := backupcode.Generate(5)
	require.NoError(t, err)
	hashes := backupcode.HashAll(codes)
	require.Len(t, hashes, 5)

	for _, code := range codes {
		assert.True(t, backupcode.Verify(code, hashes))
	}

	assert.False(t, backupcode.Verify("0000-0000", hashes))
	assert.False(t, backupcode.Verify("", hashes))
}

func TestVerifyEmptySet(t *testing.T) {
	assert.False(t, backupcode.Verify("AB12-CD34", nil))
	assert.False(t, backupcode.Verify("AB12-CD34", []string{}))
}

func TestVerifyNormalizesInput(t *testing.T) {
	codes, err := backupcode.Generate(1)
	require.NoError(t, err)
	hashes := backupcode.HashAll(codes)

	padded := "  " + codes[0] + " "
	assert.True(t, backupcode.Verify(padded, hashes))
}

func TestConsumeSingleUse(t *testing.T) {
	codes, err := backupcode.Generate(10)
	require.NoError(t, err)
	hashes := backupcode.HashAll(codes)

	// Code #3 verifies, is consumed, then no longer verifies;
	// code #7 is untouched by the consumption.
	assert.True(t, backupcode.Verify(codes[3], hashes))

	remaining := backupcode.Consume(codes[3], hashes)
	assert.Len(t, remaining, 9)
	assert.False(t, backupcode.Verify(codes[3], remaining))
	assert.True(t, backupcode.Verify(codes[7], remaining))

	for i, code := range codes {
		if i == 3 {
			continue
		}
		assert.True(t, backupcode.Verify(code, remaining), "code %d", i)
	}
}

func TestConsumeUnknownCodeIsNoop(t *testing.T) {
	codes, err := backupcode.Generate(4)
	require.NoError(t, err)
	hashes := backupcode.HashAll(codes)

	remaining := backupcode.Consume("FFFF-FFFF", hashes)
	assert.Equal(t, hashes, remaining)
}
