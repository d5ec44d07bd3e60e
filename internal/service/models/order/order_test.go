package order

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	valid := []string{"pending", "processing", "shipping", "delivered", "cancelled"}
	for _, s := range valid {
		parsed, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", s, err)
		}
		if parsed.String() != s {
			t.Errorf("ParseStatus(%q) = %q", s, parsed)
		}
	}

	for _, s := range []string{"", "PENDING", "shipped", "unknown"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) expected ErrInvalidStatus, got: %v", s, err)
		}
	}
}

func TestStatusValue(t *testing.T) {
	// Status values are bound as query arguments directly; the driver sees
	// the plain string form.
	v, err := StatusShipping.Value()
	if err != nil {
		t.Fatalf("Value() returned error: %v", err)
	}
	if v != "shipping" {
		t.Errorf("Value() = %v, want %q", v, "shipping")
	}
}

func TestNewOrderCode(t *testing.T) {
	pattern := regexp.MustCompile(`^MM[0-9]+$`)

	code := NewOrderCode("MM")
	if !pattern.MatchString(code) {
		t.Fatalf("code %q does not match expected pattern", code)
	}

	// The numeric part starts with the millisecond timestamp.
	digits := strings.TrimPrefix(code, "MM")
	millis, err := strconv.ParseInt(digits[:13], 10, 64)
	if err != nil {
		t.Fatalf("code %q has no parseable timestamp: %v", code, err)
	}
	now := time.Now().UnixMilli()
	if millis < now-time.Minute.Milliseconds() || millis > now+time.Minute.Milliseconds() {
		t.Errorf("code timestamp %d too far from now %d", millis, now)
	}
}
