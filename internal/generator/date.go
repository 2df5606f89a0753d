package generator

import (
	"time"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/util"
)

// Date returns a uniform calendar day in [from, to], both inclusive, at
// midnight UTC.
func Date(src entropy.Source, from, to time.Time) (time.Time, error) {
	from, to = util.TruncateDay(from), util.TruncateDay(to)
	if to.Before(from) {
		return time.Time{}, t4ferr.InvalidRange(util.FormatDate(from), util.FormatDate(to))
	}
	offset, err := entropy.Between(src, 0, util.DaysBetween(from, to))
	if err != nil {
		return time.Time{}, err
	}
	return from.AddDate(0, 0, int(offset)), nil
}
