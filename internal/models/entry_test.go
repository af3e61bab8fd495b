package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
)

func TestProgressRecordValidate(t *testing.T) {
	valid := func() ProgressRecord {
		return ProgressRecord{
			Name:          "Asha Rao",
			RegNumber:     "S1",
			Branch:        "CSE",
			Company:       "Acme",
			RoundsCleared: 3,
			Blog:          "three rounds, one DSA, two HR",
		}
	}

	testCases := []struct {
		name      string
		mutate    func(p *ProgressRecord)
		wantField string
	}{
		{name: "complete record", mutate: func(p *ProgressRecord) {}},
		{name: "lowercase branch is accepted", mutate: func(p *ProgressRecord) { p.Branch = "cse" }},
		{name: "zero rounds is accepted", mutate: func(p *ProgressRecord) { p.RoundsCleared = 0 }},
		{name: "missing name", mutate: func(p *ProgressRecord) { p.Name = "" }, wantField: "name"},
		{name: "blank reg number", mutate: func(p *ProgressRecord) { p.RegNumber = "   " }, wantField: "regNumber"},
		{name: "unknown branch", mutate: func(p *ProgressRecord) { p.Branch = "Physics" }, wantField: "branch"},
		{name: "missing blog", mutate: func(p *ProgressRecord) { p.Blog = "" }, wantField: "blog"},
		{name: "negative rounds", mutate: func(p *ProgressRecord) { p.RoundsCleared = -1 }, wantField: "roundsCleared"},
		{
			name: "first missing field is reported",
			mutate: func(p *ProgressRecord) {
				p.Company = ""
				p.Blog = ""
				p.Branch = ""
			},
			wantField: "branch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(&p)
			err := AsValidationError(p.Validate())
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tc.wantField, apperrors.FieldOf(err))
		})
	}
}

func TestProgressRecordAcceptsPlacementBlogAlias(t *testing.T) {
	var p ProgressRecord
	err := json.Unmarshal([]byte(`{
		"name": "Asha Rao",
		"regNumber": "S1",
		"branch": "IT",
		"company": "Acme",
		"roundsCleared": 2,
		"placementBlog": "legacy key"
	}`), &p)
	require.NoError(t, err)
	assert.Equal(t, "legacy key", p.Blog)
	assert.Equal(t, 2, p.RoundsCleared)
	assert.Equal(t, "S1", p.RegNumber)
}

func TestProgressRecordRoundsCleared(t *testing.T) {
	tests := []struct {
		name    string
		rounds  string
		want    int
		wantErr bool
	}{
		{name: "number", rounds: `3`, want: 3},
		{name: "numeric string", rounds: `"3"`, want: 3},
		{name: "padded string", rounds: `" 2 "`, want: 2},
		{name: "null", rounds: `null`, want: 0},
		{name: "word", rounds: `"three"`, wantErr: true},
		{name: "empty string", rounds: `""`, wantErr: true},
		{name: "fraction", rounds: `2.5`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p ProgressRecord
			err := json.Unmarshal([]byte(`{"name": "Asha", "roundsCleared": `+tt.rounds+`}`), &p)
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Equal(t, "roundsCleared", apperrors.FieldOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.RoundsCleared)
			assert.Equal(t, "Asha", p.Name)
		})
	}
}

func TestCompanyInput(t *testing.T) {
	t.Run("canonical keys", func(t *testing.T) {
		var c CompanyInput
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme","requiredRounds":3}`), &c))
		require.NoError(t, c.Validate())
		assert.Equal(t, Company{Name: "Acme", RequiredRounds: 3}, c.Company())
	})

	t.Run("legacy on-campus keys", func(t *testing.T) {
		var c CompanyInput
		require.NoError(t, json.Unmarshal([]byte(`{"cname":"Initech","trounds":2}`), &c))
		assert.Equal(t, Company{Name: "Initech", RequiredRounds: 2}, c.Company())
	})

	t.Run("legacy off-campus keys", func(t *testing.T) {
		var c CompanyInput
		require.NoError(t, json.Unmarshal([]byte(`{"ocname":"Globex","otrounds":4}`), &c))
		assert.Equal(t, Company{Name: "Globex", RequiredRounds: 4}, c.Company())
	})

	t.Run("zero rounds is allowed", func(t *testing.T) {
		var c CompanyInput
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Walk-in","requiredRounds":0}`), &c))
		assert.NoError(t, c.Validate())
	})

	t.Run("missing rounds", func(t *testing.T) {
		var c CompanyInput
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Acme"}`), &c))
		err := AsValidationError(c.Validate())
		require.Error(t, err)
		assert.Equal(t, "requiredRounds", apperrors.FieldOf(err))
	})
}

func TestParseTrack(t *testing.T) {
	track, err := ParseTrack("OFF")
	require.NoError(t, err)
	assert.Equal(t, OffCampus, track)

	_, err = ParseTrack("remote")
	assert.Error(t, err)
}
