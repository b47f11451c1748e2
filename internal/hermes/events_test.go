package hermes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/msgram/internal/model"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "msgram.calculation.abc.completed", SubjectCalculationCompleted("abc"))
	assert.Equal(t, "msgram.>", SubjectAll)
	assert.Equal(t, "MSGRAM_EVENTS", StreamName)
}

func TestCalculationFailedEventOmitsEmptyKeys(t *testing.T) {
	data, err := json.Marshal(CalculationFailedEvent{Error: "boom"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keys")

	data, err = json.Marshal(CalculationFailedEvent{
		Error: "missing_key [tests]",
		Kind:  string(model.KindMissingKey),
		Keys:  []string{"tests"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"missing_key"`)
}
