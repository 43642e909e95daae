package dateparse_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/coursetrack/internal/core/common/dateparse"
)

func TestDateparse(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dateparse Suite")
}

var _ = Describe("Normalize", func() {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	It("parses the supported format set to the same canonical date", func() {
		cases := map[string]time.Time{
			"1-Sep-23":           day(2023, time.September, 1),
			"01-Sep-23":          day(2023, time.September, 1),
			"1-Sep-2023":         day(2023, time.September, 1),
			"1st September 2023": day(2023, time.September, 1),
			"2023 September 1st": day(2023, time.September, 1),
			"2023 Sep 1":         day(2023, time.September, 1),
			"Sep 1 2023":         day(2023, time.September, 1),
			"2023-09-01":         day(2023, time.September, 1),
			"01/09/2023":         day(2023, time.September, 1),
			"01.09.2023":         day(2023, time.September, 1),
		}

		for raw, want := range cases {
			got, ok := dateparse.Normalize(raw)
			Expect(ok).To(BeTrue(), "input %q", raw)
			Expect(got).To(Equal(want), "input %q", raw)
		}
	})

	It("parses ordinal day-month-year text", func() {
		got, ok := dateparse.Normalize("29th November 2025")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(day(2025, time.November, 29)))
	})

	It("parses year-first text with trailing ordinal day", func() {
		got, ok := dateparse.Normalize("2021 May 10th")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(day(2021, time.May, 10)))
	})

	It("parses a bare year as January 1st", func() {
		got, ok := dateparse.Normalize("2024")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(day(2024, time.January, 1)))
	})

	It("normalizes commas and repeated whitespace before parsing", func() {
		got, ok := dateparse.Normalize("  Sep 1,   2023 ")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(day(2023, time.September, 1)))
	})

	It("prefers day/month over month/day for slash dates", func() {
		got, ok := dateparse.Normalize("03/05/2021")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(day(2021, time.May, 3)))
	})

	It("returns absent for every sentinel token without erroring", func() {
		for _, raw := range []string{"n/a", "N/A", "na", "NA", "-", "—", "none", "NONE", "", "   "} {
			_, ok := dateparse.Normalize(raw)
			Expect(ok).To(BeFalse(), "input %q", raw)
		}
	})

	It("returns absent for malformed input instead of erroring", func() {
		_, ok := dateparse.Normalize("next tuesday-ish")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("NormalizeDetail", func() {
	It("distinguishes sentinel input from malformed input", func() {
		_, detail := dateparse.NormalizeDetail("N/A")
		Expect(detail).To(Equal(dateparse.DetailAbsent))

		_, detail = dateparse.NormalizeDetail("31st Febtember")
		Expect(detail).To(Equal(dateparse.DetailMalformed))

		_, detail = dateparse.NormalizeDetail("1-Sep-23")
		Expect(detail).To(Equal(dateparse.DetailParsed))
	})
})
