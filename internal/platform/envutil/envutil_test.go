package envutil

import "testing"

func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "  value  ")
	if got := String("ENVUTIL_TEST_STR", "def"); got != "value" {
		t.Fatalf("String: got %q", got)
	}
	if got := String("ENVUTIL_TEST_STR_MISSING", "def"); got != "def" {
		t.Fatalf("String (missing): got %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "3001")
	if got := Int("ENVUTIL_TEST_INT", 8080); got != 3001 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("ENVUTIL_TEST_INT_MISSING", 8080); got != 8080 {
		t.Fatalf("Int (missing): got %d", got)
	}

	t.Setenv("ENVUTIL_TEST_INT_BAD", "not-a-number")
	if got := Int("ENVUTIL_TEST_INT_BAD", 8080); got != 8080 {
		t.Fatalf("Int (malformed): got %d", got)
	}
}
