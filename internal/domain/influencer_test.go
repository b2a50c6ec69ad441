package domain

import "testing"

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"@alice", "alice"},
		{"alice", "alice"},
		{"  @bob  ", "bob"},
		{"@@carol", "@carol"},
		{"", ""},
		{"@", ""},
	}
	for _, tc := range cases {
		if got := NormalizeUsername(tc.in); got != tc.want {
			t.Fatalf("NormalizeUsername(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
