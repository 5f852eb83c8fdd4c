package report

// Report field names as sent by the analysis service.
const (
	FieldCurrentSkills             = "current_skills"
	FieldMissingSkills             = "missing_skills"
	FieldRecommendedCertifications = "recommended_certifications"
	FieldEffortLevel               = "effort_level"
	FieldSummaryAdvice             = "summary_advice"
	FieldJobRolesYouCanApplyFor    = "job_roles_you_can_apply_for"
	FieldJobRolesYouDesire         = "job_roles_you_desire"
	FieldPercentageMatch           = "percentage_match"
	FieldCVStrongPoints            = "cv_strong_points"
	FieldCVWeakPoints              = "cv_weak_points"
	FieldCVImprovementSuggestions  = "cv_improvement_suggestions"
	FieldMarketTrendAdvice         = "market_trend_advice"
	FieldRecommendedCourses        = "recommended_courses"
	FieldUsedCV                    = "used_cv"
	FieldError                     = "error"
)

// Kind tags the shape of a decoded value.
type Kind int

const (
	// KindAbsent means the field was not present at all.
	KindAbsent Kind = iota
	// KindNull means the field was present with a JSON null.
	KindNull
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
)

// String returns the kind name.
func (k Kind) String() (name string) {
	switch k {
	case KindAbsent:
		name = "absent"
	case KindNull:
		name = "null"
	case KindString:
		name = "string"
	case KindNumber:
		name = "number"
	case KindBool:
		name = "bool"
	case KindList:
		name = "list"
	case KindObject:
		name = "object"
	default:
		name = "unknown"
	}
	return name
}

// Value is one report field. Only the members matching Kind are meaningful.
type Value struct {
	Kind  Kind
	Str   string
	Num   float64
	Bool  bool
	Items []Item
	Raw   string
}

// Item is one entry of a list value.
type Item struct {
	Kind Kind
	// Text holds the string form of scalar items.
	Text string
	// Name and Provider are set for objects such as certifications.
	Name     string
	Provider string
	// MissingSkill and Courses are set for recommended course groups.
	MissingSkill string
	Courses      []string
	HasCourses   bool
	Raw          string
}

// Report is the structured analysis returned by the matching service.
// Every member distinguishes absence (KindAbsent) from zero values.
type Report struct {
	CurrentSkills             Value
	MissingSkills             Value
	RecommendedCertifications Value
	EffortLevel               Value
	SummaryAdvice             Value
	JobRolesYouCanApplyFor    Value
	JobRolesYouDesire         Value
	PercentageMatch           Value
	CVStrongPoints            Value
	CVWeakPoints              Value
	CVImprovementSuggestions  Value
	MarketTrendAdvice         Value
	RecommendedCourses        Value
	UsedCV                    Value
	Error                     Value

	// Raw is the JSON object the report was decoded from.
	Raw string
}
