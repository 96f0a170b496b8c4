package server

import (
	"testing"
	"time"
)

func TestParseOptionalTime(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		endOfDay bool
		want     string
		wantNil  bool
		wantErr  bool
	}{
		{name: "empty", input: "", wantNil: true},
		{name: "blank", input: "   ", wantNil: true},
		{name: "rfc3339", input: "2024-03-01T10:30:00Z", want: "2024-03-01T10:30:00Z"},
		{name: "date start of day", input: "2024-03-01", want: "2024-03-01T00:00:00Z"},
		{name: "date end of day", input: "2024-03-01", endOfDay: true, want: "2024-03-01T23:59:59.999999999Z"},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseOptionalTime(tc.input, tc.endOfDay)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if tc.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			want, parseErr := time.Parse(time.RFC3339Nano, tc.want)
			if parseErr != nil {
				t.Fatalf("bad want: %v", parseErr)
			}
			if got == nil || !got.Equal(want) {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}
}
