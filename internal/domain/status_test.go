package domain

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"current", StatusCurrent, false},
		{"needs-review", StatusNeedsReview, false},
		{"archived", StatusArchived, false},
		{"Current", StatusUnknown, true},
		{"draft", StatusUnknown, true},
		{"", StatusUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusCurrent, StatusNeedsReview, StatusArchived} {
		got, err := ParseStatus(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %v, %v", s.String(), got, err)
		}
	}
}
