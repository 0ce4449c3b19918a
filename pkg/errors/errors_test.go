package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	camderrors "github.com/cheapamd/camd/pkg/errors"
)

func TestStructuredError_Error(t *testing.T) {
	err := camderrors.New(camderrors.ErrCodeAuth, "invalid API key")
	want := "AUTH_ERROR: invalid API key"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestStructuredError_WrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := camderrors.Wrap(camderrors.ErrCodeNetwork, "provider unreachable", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to be found via errors.Is")
	}

	var se *camderrors.StructuredError
	if !stderrors.As(err, &se) {
		t.Fatal("expected StructuredError via errors.As")
	}
	if se.Code != camderrors.ErrCodeNetwork {
		t.Errorf("Code = %q, want %q", se.Code, camderrors.ErrCodeNetwork)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured error",
			err:  camderrors.New(camderrors.ErrCodeParse, "bad shape"),
			want: camderrors.ErrCodeParse,
		},
		{
			name: "wrapped structured error",
			err:  fmt.Errorf("fetch failed: %w", camderrors.New(camderrors.ErrCodeAuth, "denied")),
			want: camderrors.ErrCodeAuth,
		},
		{
			name: "plain error",
			err:  stderrors.New("boom"),
			want: camderrors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := camderrors.CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := camderrors.Newf(camderrors.ErrCodeConfigMissing, "no config at %s", "/tmp/none")
	if !camderrors.HasCode(err, camderrors.ErrCodeConfigMissing) {
		t.Error("expected HasCode to match CONFIG_MISSING")
	}
	if camderrors.HasCode(err, camderrors.ErrCodeAuth) {
		t.Error("did not expect HasCode to match AUTH_ERROR")
	}
	if camderrors.HasCode(stderrors.New("plain"), camderrors.ErrCodeAuth) {
		t.Error("plain errors carry no code")
	}
}
