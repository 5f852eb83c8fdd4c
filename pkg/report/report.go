package report

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Empty reports whether a response body carries no data: nothing, whitespace,
// a JSON null or an empty JSON string.
func Empty(body []byte) (empty bool) {
	text := strings.TrimSpace(string(body))
	switch text {
	case "", "null", `""`:
		empty = true
	}
	return empty
}

// Parse decodes a response body into a Report. A body wrapped in Markdown
// code fences is accepted.
func Parse(body []byte) (rep Report, err error) {
	text := stripMarkdownCodeFences(strings.TrimSpace(string(body)))

	if !gjson.Valid(text) {
		err = errors.New("response body is not valid JSON")
		return rep, err
	}

	root := gjson.Parse(text)
	if !root.IsObject() {
		err = errors.Errorf("response body is not a JSON object: %s", truncate(text, 80))
		return rep, err
	}

	rep = Report{
		CurrentSkills:             decodeValue(root.Get(FieldCurrentSkills)),
		MissingSkills:             decodeValue(root.Get(FieldMissingSkills)),
		RecommendedCertifications: decodeValue(root.Get(FieldRecommendedCertifications)),
		EffortLevel:               decodeValue(root.Get(FieldEffortLevel)),
		SummaryAdvice:             decodeValue(root.Get(FieldSummaryAdvice)),
		JobRolesYouCanApplyFor:    decodeValue(root.Get(FieldJobRolesYouCanApplyFor)),
		JobRolesYouDesire:         decodeValue(root.Get(FieldJobRolesYouDesire)),
		PercentageMatch:           decodeValue(root.Get(FieldPercentageMatch)),
		CVStrongPoints:            decodeValue(root.Get(FieldCVStrongPoints)),
		CVWeakPoints:              decodeValue(root.Get(FieldCVWeakPoints)),
		CVImprovementSuggestions:  decodeValue(root.Get(FieldCVImprovementSuggestions)),
		MarketTrendAdvice:         decodeValue(root.Get(FieldMarketTrendAdvice)),
		RecommendedCourses:        decodeValue(root.Get(FieldRecommendedCourses)),
		UsedCV:                    decodeValue(root.Get(FieldUsedCV)),
		Error:                     decodeValue(root.Get(FieldError)),
		Raw:                       root.Raw,
	}

	return rep, err
}

// HasError reports whether the service flagged the analysis as failed.
func (r Report) HasError() (failed bool) {
	failed = r.Error.Truthy()
	return failed
}

// ErrorText returns a readable form of the service's error indicator.
func (r Report) ErrorText() (text string) {
	if !r.HasError() {
		return text
	}
	if r.Error.Kind == KindString {
		text = r.Error.Str
		return text
	}
	text = r.Error.Raw
	return text
}

// ShowsCV reports whether CV-derived sections apply to this report.
func (r Report) ShowsCV() (show bool) {
	show = r.UsedCV.Truthy()
	return show
}

// MatchPercentage returns the match percentage and whether the service
// actually supplied one. A numeric string is accepted.
func (r Report) MatchPercentage() (pct float64, ok bool) {
	switch r.PercentageMatch.Kind {
	case KindNumber:
		pct = r.PercentageMatch.Num
		ok = true
	case KindString:
		parsed, parseErr := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(r.PercentageMatch.Str), "%"), 64)
		if parseErr == nil {
			pct = parsed
			ok = true
		}
	}
	return pct, ok
}

// Truthy follows the service's loose notion of "has a value": non-empty
// strings, non-zero numbers, true, and any list or object.
func (v Value) Truthy() (truthy bool) {
	switch v.Kind {
	case KindString:
		truthy = v.Str != ""
	case KindNumber:
		truthy = v.Num != 0
	case KindBool:
		truthy = v.Bool
	case KindList, KindObject:
		truthy = true
	}
	return truthy
}

// Present reports whether the field was sent with a non-null value.
func (v Value) Present() (present bool) {
	present = v.Kind != KindAbsent && v.Kind != KindNull
	return present
}

// Scalar returns the display form of a string, number or bool value.
func (v Value) Scalar() (text string) {
	switch v.Kind {
	case KindString:
		text = v.Str
	case KindNumber:
		text = FormatNumber(v.Num)
	case KindBool:
		text = strconv.FormatBool(v.Bool)
	}
	return text
}

// FormatNumber prints a number without trailing zeros.
func FormatNumber(n float64) (text string) {
	text = strconv.FormatFloat(n, 'f', -1, 64)
	return text
}

func decodeValue(res gjson.Result) (v Value) {
	if !res.Exists() {
		v.Kind = KindAbsent
		return v
	}

	v.Raw = res.Raw

	switch {
	case res.Type == gjson.Null:
		v.Kind = KindNull
	case res.Type == gjson.String:
		v.Kind = KindString
		v.Str = res.Str
	case res.Type == gjson.Number:
		v.Kind = KindNumber
		v.Num = res.Num
	case res.Type == gjson.True || res.Type == gjson.False:
		v.Kind = KindBool
		v.Bool = res.Bool()
	case res.IsArray():
		v.Kind = KindList
		v.Items = make([]Item, 0)
		res.ForEach(func(_, elem gjson.Result) (next bool) {
			v.Items = append(v.Items, decodeItem(elem))
			next = true
			return next
		})
	case res.IsObject():
		v.Kind = KindObject
	}

	return v
}

func decodeItem(res gjson.Result) (item Item) {
	item.Raw = res.Raw

	switch {
	case res.Type == gjson.Null:
		item.Kind = KindNull
	case res.Type == gjson.String:
		item.Kind = KindString
		item.Text = res.Str
	case res.Type == gjson.Number:
		item.Kind = KindNumber
		item.Text = FormatNumber(res.Num)
	case res.Type == gjson.True || res.Type == gjson.False:
		item.Kind = KindBool
		item.Text = strconv.FormatBool(res.Bool())
	case res.IsArray():
		item.Kind = KindList
	case res.IsObject():
		item.Kind = KindObject
		item.Name = stringField(res, "name")
		item.Provider = stringField(res, "provider")
		item.MissingSkill = stringField(res, "missing_skill")

		courses := res.Get("courses")
		if courses.IsArray() {
			item.HasCourses = true
			item.Courses = make([]string, 0)
			courses.ForEach(func(_, c gjson.Result) (next bool) {
				switch c.Type {
				case gjson.String:
					item.Courses = append(item.Courses, c.Str)
				case gjson.Number:
					item.Courses = append(item.Courses, FormatNumber(c.Num))
				}
				next = true
				return next
			})
		}
	}

	return item
}

// stringField returns a scalar member of an object as text, or "" when it
// is missing or not a scalar.
func stringField(obj gjson.Result, key string) (text string) {
	res := obj.Get(key)
	switch res.Type {
	case gjson.String:
		text = res.Str
	case gjson.Number:
		text = FormatNumber(res.Num)
	}
	return text
}

// stripMarkdownCodeFences removes ```json / ``` fences around a JSON body.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = text
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}

func truncate(text string, limit int) (out string) {
	out = text
	if len(out) > limit {
		out = out[:limit] + "..."
	}
	return out
}
