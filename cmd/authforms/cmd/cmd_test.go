package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		contains []string
	}{
		{
			name:     "valid login",
			args:     []string{"check", "--email", "user@example.com", "--password", "secret1"},
			contains: []string{"email:", "ok", "login form is valid"},
		},
		{
			name:     "invalid login",
			args:     []string{"check", "--email", "nope", "--password", "abc"},
			wantErr:  true,
			contains: []string{"Please enter a valid email address", "Password must be at least 6 characters"},
		},
		{
			name:     "register mismatch",
			args:     []string{"check", "--form", "register", "--email", "a@b.com", "--password", "abcdef", "--confirm", "abcdxx"},
			wantErr:  true,
			contains: []string{"confirmPassword:", "Passwords do not match"},
		},
		{
			name:     "german messages",
			args:     []string{"check", "--lang", "de"},
			wantErr:  true,
			contains: []string{"E-Mail ist erforderlich", "Passwort ist erforderlich"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidCredentials)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCheck_UnknownForm(t *testing.T) {
	_, err := run(t, "check", "--form", "signup")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errInvalidCredentials)
}

func TestCheck_Language(t *testing.T) {
	tests := []struct {
		lang    string
		wantErr string
	}{
		{lang: "en"},
		{lang: "de"},
		{lang: "de-AT"},
		{lang: "fr", wantErr: "supported: en, de"},
		{lang: "!!", wantErr: "invalid --lang"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			_, err := run(t, "check", "--lang", tt.lang, "--email", "user@example.com", "--password", "secret1")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTopics(t *testing.T) {
	out, err := run(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "auth.login.submitted")
	assert.Contains(t, out, "auth.register.submitted")

	out, err = run(t, "topics", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 2, decoded.Count)

	_, err = run(t, "topics", "--format", "xml")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "authforms v"+version+"\n", out)
}
