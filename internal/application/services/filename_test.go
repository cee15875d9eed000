package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_sanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "receipt"},
		{"plain", "receipt.pdf", "receipt.pdf"},
		{"upper-cased", "Receipt Март.PDF", "receipt.pdf"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"windows path", `C:\Users\me\scan.jpeg`, "scan.jpeg"},
		{"leading dots", "...hidden.png", "hidden.png"},
		{"spaces and dots collapse", "my  receipt. v2.pdf", "my-receipt-v2.pdf"},
		{"diacritics stripped", "café-receipt.pdf", "cafe-receipt.pdf"},
		{"reserved device name", "con.txt", "_con.txt"},
		{"only junk", "###.pdf", "receipt.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}

func Test_sanitizeFileName_LongNamesTruncated(t *testing.T) {
	long := strings.Repeat("a", 300) + ".pdf"
	got := sanitizeFileName(long)

	assert.LessOrEqual(t, len(got), maxBaseNameLen)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}
