package salary_test

import (
	"testing"

	"github.com/jimezsa/jobtrack/internal/salary"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "hourly", in: "$23/hr", want: "$23.00/hr (~$47,840/yr)"},
		{name: "hourly words", in: "$25 per hour", want: "$25.00/hr (~$52,000/yr)"},
		{name: "monthly", in: "$5000/mo", want: "$5,000/mo (~$60,000/yr, ~$28.85/hr)"},
		{name: "yearly", in: "$120,000/yr", want: "$120,000/yr (~$57.69/hr)"},
		{name: "yearly k", in: "$120k/yr", want: "$120,000/yr (~$57.69/hr)"},
		{name: "hourly range", in: "$23-$30/hr", want: "$23.00–$30.00/hr (~$47,840–$62,400/yr)"},
		{name: "yearly k range", in: "$100k - $140k per year", want: "$100,000–$140,000/yr (~$48.08–$67.31/hr)"},
		{name: "k on one end applies to range", in: "$100 - $120k/yr", want: "$100,000–$120,000/yr (~$48.08–$57.69/hr)"},
		{name: "bare k range", in: "70-90k per year", want: "$70,000–$90,000/yr (~$33.65–$43.27/hr)"},
		{name: "monthly range", in: "$4,000 – $5,000 a month", want: "$4,000–$5,000/mo (~$48,000–$60,000/yr, ~$23.08–$28.85/hr)"},
		{name: "trimmed", in: "  $23/hr  ", want: "$23.00/hr (~$47,840/yr)"},
		{name: "empty", in: "   ", want: ""},
		{name: "manual keyword", in: "Negotiable", want: "Negotiable"},
		{name: "manual keyword upper", in: "TBD", want: "TBD"},
		{name: "no markers", in: "great benefits", want: "great benefits"},
		{name: "no unit", in: "$85,000", want: "$85,000"},
		{name: "unit without amount", in: "paid hourly", want: "paid hourly"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, salary.Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"$23/hr", "$5000/mo", "$120k/yr", "$100k - $140k per year", "Negotiable", "$85,000"} {
		once := salary.Normalize(in)
		assert.Equal(t, once, salary.Normalize(once), in)
	}
}

func TestDetectUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, salary.UnitHourly, salary.DetectUnit("$30 an hour"))
	assert.Equal(t, salary.UnitYearly, salary.DetectUnit("$90,000 yearly"))
	assert.Equal(t, salary.UnitMonthly, salary.DetectUnit("$3,000 per month"))
	assert.Equal(t, salary.UnitNone, salary.DetectUnit("$85,000"))
	assert.Equal(t, salary.UnitHourly, salary.DetectUnit("$40/hr or $83,200/yr"))
	assert.Equal(t, "monthly", salary.UnitMonthly.String())
}
