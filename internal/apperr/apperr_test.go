package apperr

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestUserError(t *testing.T) {
	err := Userf("bad flag %q", "--x")
	if !IsUser(err) {
		t.Fatalf("expected IsUser to be true")
	}
	if got := err.Error(); got != `bad flag "--x"` {
		t.Fatalf("Error() = %q", got)
	}
	if IsUser(errors.New("plain")) {
		t.Fatalf("plain error must not be a user error")
	}
	if !IsUser(fmt.Errorf("wrapped: %w", User("x"))) {
		t.Fatalf("wrapped user error should be detected")
	}
}

func TestConfigError_MatchesSentinelAndCause(t *testing.T) {
	err := Config("mkdir", "/out/dist", fs.ErrPermission)

	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected underlying cause to be preserved")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Path != "/out/dist" {
		t.Fatalf("expected *ConfigError with path, got %#v", err)
	}
	if !strings.Contains(err.Error(), "mkdir /out/dist") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestContractf(t *testing.T) {
	err := Contractf("unknown kind %q", "ftp")
	if !errors.Is(err, ErrContractViolation) {
		t.Fatalf("expected ErrContractViolation")
	}
	if !strings.Contains(err.Error(), `unknown kind "ftp"`) {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
