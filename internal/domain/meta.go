package domain

// PeriodType classifies the recruitment window of a posting.
type PeriodType string

const (
	PeriodFixed   PeriodType = "FIXED"   // explicit open/close date range
	PeriodAlways  PeriodType = "ALWAYS"  // 상시채용
	PeriodOpen    PeriodType = "OPEN"    // 수시채용 / 채용시 마감
	PeriodUnknown PeriodType = "UNKNOWN"
)

// RecruitmentPeriod describes the recruitment window found in a document.
// OpenDate and CloseDate are set iff Type == PeriodFixed; both use the raw
// document format (normalised to ISO-8601 only at the serialisation boundary).
type RecruitmentPeriod struct {
	Type      PeriodType
	OpenDate  string
	CloseDate string
	RawTexts  []string
}

// SkillSet is the de-duplicated, ascending-sorted list of canonical skill
// names mentioned anywhere in the document.
type SkillSet struct {
	Skills []string
}

// DocumentMeta aggregates document-global metadata collected in one pass over
// the line document. It never fails to build; absence is expressed as
// PeriodUnknown and an empty skill list.
type DocumentMeta struct {
	RecruitmentPeriod RecruitmentPeriod
	SkillSet          SkillSet
}
