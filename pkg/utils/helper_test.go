package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "1", want: 1},
		{value: " 42 ", want: 42},
		{value: "0", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "abc", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.value, "id")
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseID(%q) = %d, %v", tt.value, got, err)
		}
		if err != nil && !errors.Is(err, ErrBadRequest) {
			t.Errorf("ParseID(%q) error = %v, want bad request", tt.value, err)
		}
	}
}

func TestParseOptionalInt(t *testing.T) {
	got, err := ParseOptionalInt("", "year")
	if got != nil || err != nil {
		t.Errorf("ParseOptionalInt(empty) = %v, %v", got, err)
	}

	got, err = ParseOptionalInt("1999", "year")
	if err != nil || got == nil || *got != 1999 {
		t.Errorf("ParseOptionalInt(1999) = %v, %v", got, err)
	}

	if _, err := ParseOptionalInt("199x", "year"); !errors.Is(err, ErrBadRequest) {
		t.Errorf("ParseOptionalInt(199x) error = %v, want bad request", err)
	}
}

func TestTypedErrors(t *testing.T) {
	notFound := fmt.Errorf("load: %w", NotFound("film %d", 7))
	if !errors.Is(notFound, ErrNotFound) || errors.Is(notFound, ErrBadRequest) {
		t.Errorf("NotFound chain broken: %v", notFound)
	}
	if notFound.Error() != "load: film 7: not found" {
		t.Errorf("message = %q", notFound.Error())
	}

	feedErr := fmt.Errorf("wrapped: %w", &FeedWriteError{Op: "add like", Err: errors.New("timeout")})
	if !IsFeedWriteError(feedErr) {
		t.Error("IsFeedWriteError() = false")
	}
	if IsFeedWriteError(NotFound("x")) {
		t.Error("IsFeedWriteError(NotFound) = true")
	}
	if got := feedErr.Error(); got != "wrapped: add like succeeded but feed write failed: timeout" {
		t.Errorf("message = %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a , ,http://b")
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Errorf("splitList() = %v", got)
	}
}
