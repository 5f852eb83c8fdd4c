package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullReport = `{
  "current_skills": ["Go", "SQL"],
  "missing_skills": [],
  "recommended_certifications": [{"name": "CKA", "provider": "CNCF"}, "AWS SAA"],
  "effort_level": "Medium",
  "summary_advice": "",
  "job_roles_you_can_apply_for": ["Backend Engineer"],
  "job_roles_you_desire": ["Staff Engineer"],
  "percentage_match": 72.5,
  "cv_strong_points": ["Clear impact"],
  "cv_weak_points": null,
  "used_cv": true,
  "recommended_courses": [
    {"missing_skill": "Kubernetes", "courses": ["K8s Basics", "CKA Prep"]},
    "Distributed Systems 101",
    {"unexpected": true},
    42
  ]
}`

func TestParseFullReport(t *testing.T) {
	rep, err := Parse([]byte(fullReport))
	require.NoError(t, err)

	assert.Equal(t, KindList, rep.CurrentSkills.Kind)
	require.Len(t, rep.CurrentSkills.Items, 2)
	assert.Equal(t, "Go", rep.CurrentSkills.Items[0].Text)

	assert.Equal(t, KindList, rep.MissingSkills.Kind)
	assert.Empty(t, rep.MissingSkills.Items)

	certs := rep.RecommendedCertifications.Items
	require.Len(t, certs, 2)
	assert.Equal(t, KindObject, certs[0].Kind)
	assert.Equal(t, "CKA", certs[0].Name)
	assert.Equal(t, "CNCF", certs[0].Provider)
	assert.Equal(t, KindString, certs[1].Kind)

	assert.Equal(t, KindString, rep.SummaryAdvice.Kind)
	assert.False(t, rep.SummaryAdvice.Truthy())

	assert.Equal(t, KindNull, rep.CVWeakPoints.Kind)
	assert.Equal(t, KindAbsent, rep.CVImprovementSuggestions.Kind)
	assert.Equal(t, KindAbsent, rep.MarketTrendAdvice.Kind)

	pct, ok := rep.MatchPercentage()
	assert.True(t, ok)
	assert.InDelta(t, 72.5, pct, 0.0001)

	assert.True(t, rep.ShowsCV())
	assert.False(t, rep.HasError())

	courses := rep.RecommendedCourses.Items
	require.Len(t, courses, 4)
	assert.Equal(t, "Kubernetes", courses[0].MissingSkill)
	assert.True(t, courses[0].HasCourses)
	assert.Equal(t, []string{"K8s Basics", "CKA Prep"}, courses[0].Courses)
	assert.Equal(t, KindString, courses[1].Kind)
	assert.Equal(t, KindObject, courses[2].Kind)
	assert.False(t, courses[2].HasCourses)
	assert.Equal(t, KindNumber, courses[3].Kind)
}

func TestMatchPercentageAbsentIsNotZero(t *testing.T) {
	rep, err := Parse([]byte(`{"current_skills": []}`))
	require.NoError(t, err)

	_, ok := rep.MatchPercentage()
	assert.False(t, ok)

	rep, err = Parse([]byte(`{"percentage_match": 0}`))
	require.NoError(t, err)

	pct, ok := rep.MatchPercentage()
	assert.True(t, ok)
	assert.Zero(t, pct)

	rep, err = Parse([]byte(`{"percentage_match": "64%"}`))
	require.NoError(t, err)

	pct, ok = rep.MatchPercentage()
	assert.True(t, ok)
	assert.InDelta(t, 64.0, pct, 0.0001)
}

func TestParseErrorIndicator(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		hasError bool
		text     string
	}{
		{name: "string error", body: `{"error": "Failed to process profile."}`, hasError: true, text: "Failed to process profile."},
		{name: "object error", body: `{"error": {"code": 1}}`, hasError: true, text: `{"code": 1}`},
		{name: "empty string error", body: `{"error": ""}`, hasError: false},
		{name: "false error", body: `{"error": false}`, hasError: false},
		{name: "no error", body: `{"effort_level": "Low"}`, hasError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := Parse([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.hasError, rep.HasError())
			assert.Equal(t, tt.text, rep.ErrorText())
		})
	}
}

func TestParseRejectsMalformedBodies(t *testing.T) {
	for _, body := range []string{"not json", "[1, 2]", "42", `{"unterminated": `} {
		_, err := Parse([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestParseFencedBody(t *testing.T) {
	rep, err := Parse([]byte("```json\n{\"effort_level\": \"High\"}\n```"))
	require.NoError(t, err)
	assert.Equal(t, "High", rep.EffortLevel.Str)
}

func TestEmpty(t *testing.T) {
	assert.True(t, Empty(nil))
	assert.True(t, Empty([]byte("   \n")))
	assert.True(t, Empty([]byte("null")))
	assert.True(t, Empty([]byte(`""`)))
	assert.False(t, Empty([]byte("{}")))
}

func TestUsedCVTruthiness(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{body: `{"used_cv": true}`, want: true},
		{body: `{"used_cv": false}`, want: false},
		{body: `{"used_cv": null}`, want: false},
		{body: `{}`, want: false},
		{body: `{"used_cv": 1}`, want: true},
	}

	for _, tt := range tests {
		rep, err := Parse([]byte(tt.body))
		require.NoError(t, err)
		assert.Equal(t, tt.want, rep.ShowsCV(), tt.body)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "75", FormatNumber(75))
	assert.Equal(t, "72.5", FormatNumber(72.5))
	assert.Equal(t, "0", FormatNumber(0))
}
