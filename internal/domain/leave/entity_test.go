package leave

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundingRule_Apply(t *testing.T) {
	tests := []struct {
		name  string
		rule  RoundingRule
		input string
		want  string
	}{
		{"none keeps fractions", RoundNone, "1.23", "1.23"},
		{"nearest_half rounds down to half", RoundNearestHalf, "1.2", "1"},
		{"nearest_half rounds up to half", RoundNearestHalf, "1.3", "1.5"},
		{"nearest_half keeps exact half", RoundNearestHalf, "2.5", "2.5"},
		{"nearest_half rounds to whole", RoundNearestHalf, "2.8", "3"},
		{"nearest_day rounds half up", RoundNearestDay, "1.5", "2"},
		{"nearest_day rounds down", RoundNearestDay, "1.4", "1"},
		{"up always ceils", RoundUp, "1.01", "2"},
		{"down always floors", RoundDown, "1.99", "1"},
		{"down keeps integers", RoundDown, "3", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := decimal.RequireFromString(tt.input)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, tt.rule.Apply(in).Equal(want),
				"rule %s on %s: got %s, want %s", tt.rule, tt.input, tt.rule.Apply(in), want)
		})
	}
}

func TestLeavePolicy_PeriodRate(t *testing.T) {
	monthly := decimal.RequireFromString("1.25")
	yearly := decimal.RequireFromString("12")

	tests := []struct {
		name   string
		policy LeavePolicy
		want   decimal.Decimal
	}{
		{
			name:   "monthly uses monthly rate",
			policy: LeavePolicy{AccrualMethod: AccrualMonthly, MonthlyRate: &monthly, YearlyRate: &yearly},
			want:   monthly,
		},
		{
			name:   "yearly uses yearly rate",
			policy: LeavePolicy{AccrualMethod: AccrualYearly, MonthlyRate: &monthly, YearlyRate: &yearly},
			want:   yearly,
		},
		{
			name:   "per_term uses yearly rate",
			policy: LeavePolicy{AccrualMethod: AccrualPerTerm, YearlyRate: &yearly},
			want:   yearly,
		},
		{
			name:   "missing rate yields zero",
			policy: LeavePolicy{AccrualMethod: AccrualMonthly},
			want:   decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.policy.PeriodRate().Equal(tt.want))
		})
	}
}

func TestEligibility_Allows(t *testing.T) {
	e := Eligibility{
		MinTenureMonths:      6,
		PositionsAllowed:     []string{"engineer", "analyst"},
		ContractTypesAllowed: []string{"permanent"},
	}

	assert.True(t, e.Allows("engineer", "permanent", "full_time", 12))
	assert.False(t, e.Allows("engineer", "permanent", "full_time", 3), "tenure below minimum")
	assert.False(t, e.Allows("intern", "permanent", "full_time", 12), "position not allowed")
	assert.False(t, e.Allows("engineer", "contract", "full_time", 12), "contract type not allowed")

	// Empty axes mean no restriction.
	open := Eligibility{}
	assert.True(t, open.Allows("anything", "anything", "anything", 0))
}

func TestEntitlement_Remaining(t *testing.T) {
	e := Entitlement{
		AccruedRounded: decimal.RequireFromString("10"),
		CarryForward:   decimal.RequireFromString("2.5"),
		Taken:          decimal.RequireFromString("4"),
		Pending:        decimal.RequireFromString("1"),
	}
	assert.True(t, e.Remaining().Equal(decimal.RequireFromString("7.5")))
}

func TestCalendar_Lookups(t *testing.T) {
	newYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cal := Calendar{
		Year:     2026,
		Holidays: []time.Time{newYear},
		BlockedPeriods: []BlockedPeriod{
			{
				From:   time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
				To:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
				Reason: "year-end close",
			},
		},
	}

	assert.True(t, cal.IsHoliday(newYear))
	assert.False(t, cal.IsHoliday(newYear.AddDate(0, 0, 1)))

	blocked := cal.BlockedOn(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC))
	if assert.NotNil(t, blocked) {
		assert.Equal(t, "year-end close", blocked.Reason)
	}
	assert.Nil(t, cal.BlockedOn(time.Date(2026, 12, 19, 0, 0, 0, 0, time.UTC)))
}

func TestAdjustmentType_Deducts(t *testing.T) {
	assert.False(t, AdjustmentAdd.Deducts())
	assert.True(t, AdjustmentDeduct.Deducts())
	assert.True(t, AdjustmentEncashment.Deducts())
}
