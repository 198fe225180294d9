package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/kcet-counsel/internal/common"
	"github.com/Veraticus/kcet-counsel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreference(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Preference
		wantErr bool
	}{
		{
			name:  "codes only",
			input: "E001:CS",
			want:  model.Preference{CollegeCode: "E001", BranchCode: "CS"},
		},
		{
			name:  "with branch name",
			input: " E001 : CS : Computer Science",
			want:  model.Preference{CollegeCode: "E001", BranchCode: "CS", BranchName: "Computer Science"},
		},
		{
			name:  "branch name keeps colons",
			input: "E001:CS:AI: Machine Learning",
			want:  model.Preference{CollegeCode: "E001", BranchCode: "CS", BranchName: "AI: Machine Learning"},
		},
		{name: "missing course", input: "E001", wantErr: true},
		{name: "empty college", input: ":CS", wantErr: true},
		{name: "empty course", input: "E001: ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePreference(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPreferences(t *testing.T) {
	t.Run("unnumbered list follows file order", func(t *testing.T) {
		prefs, err := readPreferences(strings.NewReader(`[
			{"college_code": "E001", "branch_code": "CS"},
			{"college_code": "E002", "branch_code": "EC"}
		]`))
		require.NoError(t, err)
		require.Len(t, prefs, 2)
		assert.Equal(t, 1, prefs[0].Priority)
		assert.Equal(t, 2, prefs[1].Priority)
	})

	t.Run("explicit priorities kept", func(t *testing.T) {
		prefs, err := readPreferences(strings.NewReader(`[
			{"college_code": "E001", "branch_code": "CS", "priority": 2},
			{"college_code": "E002", "branch_code": "EC", "priority": 1}
		]`))
		require.NoError(t, err)
		assert.Equal(t, 2, prefs[0].Priority)
		assert.Equal(t, 1, prefs[1].Priority)
		assert.Error(t, prefs.Validate())
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := readPreferences(strings.NewReader(`{"college_code": "E001"}`))
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})
}

func TestCollectPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"college_code": "E001", "branch_code": "CS"}]`), 0o600))

	prefs, err := collectPreferences(path, []string{"E005:EC:Electronics"})
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "E001", prefs[0].CollegeCode)
	assert.Equal(t, model.Preference{CollegeCode: "E005", BranchCode: "EC", BranchName: "Electronics", Priority: 2}, prefs[1])
	assert.NoError(t, prefs.Validate())

	_, err = collectPreferences(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = collectPreferences("", []string{"bad"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
