package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/spf13/pflag"
)

// dayValue is a YYYY-MM-DD flag. It stays nil until set.
type dayValue struct {
	day *calendar.Day
}

var _ pflag.Value = (*dayValue)(nil)

func (v *dayValue) String() string {
	if v.day == nil {
		return ""
	}
	return v.day.String()
}

func (v *dayValue) Set(s string) error {
	d, err := calendar.ParseDay(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	v.day = &d
	return nil
}

func (v *dayValue) Type() string { return "date" }

const clockLayout = "2006-01-02 15:04"

// clockValue is a "YYYY-MM-DD HH:MM" flag interpreted in the calendar's
// location at parse time.
type clockValue struct {
	loc *time.Location
	t   *time.Time
}

var _ pflag.Value = (*clockValue)(nil)

func (v *clockValue) String() string {
	if v.t == nil {
		return ""
	}
	return v.t.Format(clockLayout)
}

func (v *clockValue) Set(s string) error {
	loc := v.loc
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(clockLayout, s, loc)
	if err != nil {
		return fmt.Errorf("use \"YYYY-MM-DD HH:MM\" format")
	}
	v.t = &t
	return nil
}

func (v *clockValue) Type() string { return "datetime" }
