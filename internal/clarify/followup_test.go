package clarify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/model"
)

func TestFilterFollowUps(t *testing.T) {
	t.Parallel()

	triggers := catalog.Default().Triggers()

	t.Run("suppresses answered insurable hours", func(t *testing.T) {
		t.Parallel()
		profile := model.CaseProfile{
			"insurable_hours_last_52_weeks": model.StringValue("300-600 hours"),
		}
		got := FilterFollowUps(
			[]string{"Roughly how many insurable hours did you work?"},
			profile, triggers,
		)
		assert.Empty(t, got)
	})

	t.Run("keeps follow-up when field is empty", func(t *testing.T) {
		t.Parallel()
		profile := model.CaseProfile{
			"insurable_hours_last_52_weeks": model.StringValue(""),
		}
		got := FilterFollowUps(
			[]string{"Roughly how many insurable hours did you work?"},
			profile, triggers,
		)
		assert.Len(t, got, 1)
	})

	t.Run("unmatched follow-ups always pass", func(t *testing.T) {
		t.Parallel()
		profile := model.CaseProfile{
			"insurable_hours_last_52_weeks": model.StringValue("700"),
			"province":                      model.StringValue("ON"),
		}
		followUps := []string{
			"Have you applied for benefits before?",
			"Do you have a Record of Employment?",
		}
		got := FilterFollowUps(followUps, profile, triggers)
		assert.Equal(t, followUps, got)
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		t.Parallel()
		profile := model.CaseProfile{"province": model.StringValue("ON")}
		got := FilterFollowUps(
			[]string{"In which PROVINCE OR TERRITORY do you live?"},
			profile, triggers,
		)
		assert.Empty(t, got)
	})

	t.Run("mixed list filters only matches", func(t *testing.T) {
		t.Parallel()
		profile := model.CaseProfile{
			"children_count": model.NumberValue(2),
		}
		got := FilterFollowUps(
			[]string{
				"Do you have any children under 18 living with you?",
				"Are you the only adult primarily caring for the children (a single parent)?",
			},
			profile, triggers,
		)
		// children_count answered, is_single_parent not: one stays.
		assert.Equal(t, []string{
			"Are you the only adult primarily caring for the children (a single parent)?",
		}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, FilterFollowUps(nil, model.CaseProfile{}, triggers))
	})
}
