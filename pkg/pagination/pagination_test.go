package pagination

import (
	"testing"
	"time"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name  string
		in    int
		want  int
		added int
	}{
		{name: "zero falls back to default", in: 0, want: DefaultLimit},
		{name: "negative falls back to default", in: -5, want: DefaultLimit},
		{name: "within range is kept", in: 40, want: 40},
		{name: "above max is capped", in: 500, want: MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLimit(tc.in); got != tc.want {
				t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
			}
			if got := LimitWithBuffer(tc.in); got != tc.want+1 {
				t.Fatalf("LimitWithBuffer(%d) = %d, want %d", tc.in, got, tc.want+1)
			}
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2026, time.March, 14, 9, 26, 53, 589000000, time.UTC)
	encoded := EncodeCursor(Cursor{CreatedAt: created, ID: 118})

	parsed, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected cursor, got nil")
	}
	if !parsed.CreatedAt.Equal(created) {
		t.Fatalf("expected %v, got %v", created, parsed.CreatedAt)
	}
	if parsed.ID != 118 {
		t.Fatalf("expected id 118, got %d", parsed.ID)
	}
}

func TestParseCursorEmptyReturnsNil(t *testing.T) {
	parsed, err := ParseCursor("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != nil {
		t.Fatalf("expected nil cursor, got %+v", parsed)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := ParseCursor("bm9waXBl"); err == nil {
		t.Fatal("expected format error")
	}
}
