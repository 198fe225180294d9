package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrefs(codes ...string) Preferences {
	var prefs Preferences
	for _, code := range codes {
		prefs = prefs.Append(Preference{CollegeCode: code, BranchCode: "CS"})
	}
	return prefs
}

func TestPreferences_Append(t *testing.T) {
	prefs := newPrefs("E001", "E002", "E003")

	require.Len(t, prefs, 3)
	for i, p := range prefs {
		assert.Equal(t, i+1, p.Priority)
	}
	assert.NoError(t, prefs.Validate())
}

func TestPreferences_Remove(t *testing.T) {
	prefs := newPrefs("E001", "E002", "E003")

	out, err := prefs.Remove(1)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "E001", out[0].CollegeCode)
	assert.Equal(t, "E003", out[1].CollegeCode)
	assert.Equal(t, 2, out[1].Priority)
	assert.NoError(t, out.Validate())

	_, err = prefs.Remove(5)
	assert.ErrorIs(t, err, ErrInvalidPreferences)
}

func TestPreferences_Move(t *testing.T) {
	tests := []struct {
		name  string
		want  []string
		index int
		delta int
	}{
		{name: "move down", index: 0, delta: 1, want: []string{"E002", "E001", "E003"}},
		{name: "move up", index: 2, delta: -1, want: []string{"E001", "E003", "E002"}},
		{name: "top cannot move up", index: 0, delta: -1, want: []string{"E001", "E002", "E003"}},
		{name: "bottom cannot move down", index: 2, delta: 1, want: []string{"E001", "E002", "E003"}},
		{name: "out of range", index: 7, delta: 1, want: []string{"E001", "E002", "E003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := newPrefs("E001", "E002", "E003")
			prefs.Move(tt.index, tt.delta)

			got := make([]string, 0, len(prefs))
			for _, p := range prefs {
				got = append(got, p.CollegeCode)
			}
			assert.Equal(t, tt.want, got)
			assert.NoError(t, prefs.Validate())
		})
	}
}

func TestPreferences_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prefs   Preferences
		wantErr bool
	}{
		{name: "empty", prefs: nil, wantErr: true},
		{name: "dense", prefs: Preferences{{Priority: 1}, {Priority: 2}}},
		{name: "starts at zero", prefs: Preferences{{Priority: 0}, {Priority: 1}}, wantErr: true},
		{name: "gap", prefs: Preferences{{Priority: 1}, {Priority: 3}}, wantErr: true},
		{name: "duplicate", prefs: Preferences{{Priority: 1}, {Priority: 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prefs.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPreferences)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPreference_Option(t *testing.T) {
	p := Preference{CollegeCode: "E099", BranchCode: "AI"}
	assert.Equal(t, "E099AI", p.Option())
}
