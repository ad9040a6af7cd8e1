package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.Len(t, a, 32)
	require.Len(t, b, 32)
	if string(a) == string(b) {
		t.Logf("warning: two random 32-byte arrays are identical")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret!1")
	WipeByteArray(buf)
	for i, v := range buf {
		require.Zerof(t, v, "byte %d not wiped", i)
	}

	WipeByteArray(nil)
}
