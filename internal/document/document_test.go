package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/lagrum"
)

func requireCode(t *testing.T, code int, e error) {
	t.Helper()
	var le *lagrum.Error
	require.True(t, errors.As(e, &le), "expecting *lagrum.Error, got %v", e)
	assert.Equal(t, code, le.Code, le.Message)
}

func TestLegacyEncodings(t *testing.T) {
	samples := []struct {
		enc      string
		data     []byte
		expected string
	}{
		{"windows-1252", []byte{'3', 0x96, '5', ' ', 0xa7, 0xa7}, "3–5 §§"},
		{"cp1252", []byte{0x97, 0x80}, "—€"},
		{"iso-8859-1", []byte{'p', 0xe5, ' ', 0xf6}, "på ö"},
		{"latin1", []byte{0xc4}, "Ä"},
		{"cp850", []byte{0x86, 0x84, 0x94}, "åäö"},
		{"cp437", []byte{0x86, 0x84, 0x94}, "åäö"},
		{"mac-roman", []byte{0x8c, 0x8a, 0x9a}, "åäö"},
		{"UTF-8", []byte("första"), "första"},
		{"", []byte("första"), "första"},
	}

	for _, s := range samples {
		text, e := Decode(s.data, s.enc, false)
		require.NoError(t, e, s.enc)
		assert.Equal(t, s.expected, text, s.enc)
	}
}

func TestUTF8IsKept(t *testing.T) {
	text, e := Decode([]byte("abc\x8fdef"), UTF8, false)
	require.NoError(t, e)
	assert.Equal(t, "abc\x8fdef", text)

	text, e = Decode([]byte("\xef\xbb\xbf3 §"), UTF8, false)
	require.NoError(t, e)
	assert.Equal(t, "3 §", text)
}

func TestNFC(t *testing.T) {
	decomposed := "fo\u0308rsta"
	text, e := Decode([]byte(decomposed), UTF8, false)
	require.NoError(t, e)
	assert.Equal(t, decomposed, text)

	text, e = Decode([]byte(decomposed), UTF8, true)
	require.NoError(t, e)
	assert.Equal(t, "f\u00f6rsta", text)
}

func TestUnknownEncoding(t *testing.T) {
	_, e := Decode([]byte("x"), "koi8-r", false)
	requireCode(t, UnknownEncodingError, e)
	assert.Contains(t, e.Error(), "windows-1252")
}

func TestEncodings(t *testing.T) {
	assert.Equal(t, []string{"cp437", "cp850", "iso-8859-1", "mac-roman", "utf-8", "windows-1252"}, Encodings())
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sfs.txt")
	require.NoError(t, os.WriteFile(name, []byte{'1', ' ', 0xa7}, 0o644))

	d, e := Load(name, "windows-1252", true)
	require.NoError(t, e)
	assert.Equal(t, name, d.Name)
	assert.Equal(t, "1 §", d.Text)

	_, e = Load(filepath.Join(t.TempDir(), "missing.txt"), "", false)
	requireCode(t, ReadError, e)

	d, e = Read("-", strings.NewReader("7 §"), "", false)
	require.NoError(t, e)
	assert.Equal(t, "7 §", d.Text)
}
