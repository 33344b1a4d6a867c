package middleware

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("inventory", 3, 30*time.Second)
	failing := func() error { return errors.New("downstream error") }

	for i := 0; i < 3; i++ {
		if err := cb.Call(failing); err == nil {
			t.Fatalf("Call %d should propagate the error", i)
		}
	}

	if got := cb.GetState(); got != StateOpen {
		t.Fatalf("state after %d failures = %s, want %s", 3, got, StateOpen)
	}

	// Open circuit rejects without invoking the function
	called := false
	err := cb.Call(func() error {
		called = true
		return nil
	})
	if err == nil {
		t.Error("Call on open circuit should fail fast")
	}
	if called {
		t.Error("Call on open circuit must not invoke the function")
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("inventory", 3, 30*time.Second)
	failing := func() error { return errors.New("downstream error") }
	ok := func() error { return nil }

	cb.Call(failing)
	cb.Call(failing)
	cb.Call(ok)
	cb.Call(failing)
	cb.Call(failing)

	if got := cb.GetState(); got != StateClosed {
		t.Errorf("state = %s, want %s (success should reset the count)", got, StateClosed)
	}
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("inventory", 1, 10*time.Millisecond)
	failing := func() error { return errors.New("downstream error") }
	ok := func() error { return nil }

	cb.Call(failing)
	if got := cb.GetState(); got != StateOpen {
		t.Fatalf("state = %s, want %s", got, StateOpen)
	}

	time.Sleep(20 * time.Millisecond)

	// Three successes in half-open close the circuit
	for i := 0; i < 3; i++ {
		if err := cb.Call(ok); err != nil {
			t.Fatalf("Call %d in half-open failed: %v", i, err)
		}
	}

	if got := cb.GetState(); got != StateClosed {
		t.Errorf("state after recovery = %s, want %s", got, StateClosed)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("inventory", 1, 10*time.Millisecond)
	failing := func() error { return errors.New("downstream error") }

	cb.Call(failing)
	time.Sleep(20 * time.Millisecond)
	cb.Call(failing)

	if got := cb.GetState(); got != StateOpen {
		t.Errorf("state = %s, want %s after half-open failure", got, StateOpen)
	}
}

func TestDetermineServiceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/items", "inventory"},
		{"/api/items/5/history", "inventory"},
		{"/api/transactions", "inventory"},
		{"/api/depreciations/3", "inventory"},
		{"/api/suppliers", "inventory"},
		{"/auth/login", "user"},
		{"/users/me", "user"},
		{"/admin/users/1/role", "user"},
		{"/health", ""},
		{"/metrics", ""},
	}

	for _, tt := range tests {
		if got := DetermineServiceFromPath(tt.path); got != tt.want {
			t.Errorf("DetermineServiceFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
