package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lots/internal/pkg/errs"
	"lots/internal/pkg/guard"
)

// ErrDurationIsNotConstructed is returned when a zero-value Duration is used.
var ErrDurationIsNotConstructed = errs.NewValueIsRequiredError("duration must be created via ParseDuration")

var isoDurationPattern = regexp.MustCompile(
	`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`,
)

// Duration is an ISO 8601 duration such as "P25D" or "P2YT3H", used for
// auction tenderingDuration. Calendar components are kept as written, so two
// durations are equal only when every component matches: "P1D" and "PT24H"
// are different terms.
type Duration struct {
	years, months, weeks, days int
	hours, minutes, seconds    int
	guard                      guard.ConstructorGuard
}

// ParseDuration parses an ISO 8601 duration. At least one component is
// required and a trailing "T" without time components is rejected.
//
// Example:
//
//	d, err := kernel.ParseDuration("P2YT3H")
//	fmt.Println(d) // P2YT3H
func ParseDuration(s string) (Duration, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	m := isoDurationPattern.FindStringSubmatch(value)
	if m == nil || value == "P" || strings.HasSuffix(value, "T") {
		return Duration{}, errs.NewValueIsInvalidErrorWithCause(
			"duration", fmt.Errorf("%q is not an ISO 8601 duration", s),
		)
	}

	parts := make([]int, 0, len(m)-1)
	for _, group := range m[1:] {
		if group == "" {
			parts = append(parts, 0)
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return Duration{}, errs.NewValueIsInvalidErrorWithCause("duration", err)
		}
		parts = append(parts, n)
	}

	return Duration{
		years:   parts[0],
		months:  parts[1],
		weeks:   parts[2],
		days:    parts[3],
		hours:   parts[4],
		minutes: parts[5],
		seconds: parts[6],
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the Duration was built through ParseDuration.
func (d Duration) Validate() error {
	return d.guard.Validate(ErrDurationIsNotConstructed)
}

// IsEqual compares durations component by component.
func (d Duration) IsEqual(other Duration) bool {
	return d.years == other.years && d.months == other.months && d.weeks == other.weeks &&
		d.days == other.days && d.hours == other.hours && d.minutes == other.minutes &&
		d.seconds == other.seconds
}

// String returns the canonical ISO 8601 form. Zero components are omitted
// and an all-zero duration renders as "P0D".
func (d Duration) String() string {
	var b strings.Builder
	b.WriteString("P")
	writePart(&b, d.years, 'Y')
	writePart(&b, d.months, 'M')
	writePart(&b, d.weeks, 'W')
	writePart(&b, d.days, 'D')
	if d.hours != 0 || d.minutes != 0 || d.seconds != 0 {
		b.WriteString("T")
		writePart(&b, d.hours, 'H')
		writePart(&b, d.minutes, 'M')
		writePart(&b, d.seconds, 'S')
	}
	if b.Len() == 1 {
		return "P0D"
	}
	return b.String()
}

func writePart(b *strings.Builder, n int, unit byte) {
	if n == 0 {
		return
	}
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(unit)
}
