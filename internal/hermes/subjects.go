package hermes

const (
	SubjectCalculationFailed   = "msgram.calculation.failed"
	SubjectComparisonCompleted = "msgram.comparison.completed"
	SubjectAll                 = "msgram.>"

	StreamName   = "MSGRAM_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectCalculationCompleted(releaseID string) string {
	return "msgram.calculation." + releaseID + ".completed"
}
