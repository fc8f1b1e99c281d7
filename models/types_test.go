package models

import (
	"strings"
	"testing"
)

func TestGenerateReceiptNumber(t *testing.T) {
	n1 := GenerateReceiptNumber()
	n2 := GenerateReceiptNumber()

	if !strings.HasPrefix(n1, "EV-") {
		t.Errorf("Expected EV- prefix, got %s", n1)
	}
	if len(n1) != 3+26 {
		t.Errorf("Expected 26-char ULID after prefix, got %q (len %d)", n1, len(n1))
	}
	if n1 == n2 {
		t.Errorf("Expected distinct receipt numbers, got %s twice", n1)
	}
}
