package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0190b7a0-35be-7c00-8000-000000000000",
		"123E4567-E89B-42D3-A456-426614174000",
	}
	invalid := []string{"", "not-a-uuid", "123e4567e89b42d3a456426614174000"}
	for _, u := range valid {
		if !IsValidUUID(u) {
			t.Errorf("IsValidUUID(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if IsValidUUID(u) {
			t.Errorf("IsValidUUID(%q) = true, want false", u)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-02-29"); !ok {
		t.Error("IsValidDate(2024-02-29) should be valid")
	}
	if _, ok := IsValidDate("2024-13-01"); ok {
		t.Error("IsValidDate(2024-13-01) should be invalid")
	}
	if _, ok := IsValidDate("01/02/2024"); ok {
		t.Error("IsValidDate(01/02/2024) should be invalid")
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00"}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	if _, ok := IsValidDateTime("2024-01-15 10:30:00"); ok {
		t.Error("IsValidDateTime without timezone should be invalid")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"overtime", "leave", "late"}
	if !IsInSlice("leave", slice) {
		t.Error("IsInSlice should find leave")
	}
	if IsInSlice("sick", slice) {
		t.Error("IsInSlice should not find sick")
	}
}
