package event

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/minjae-im/dallyeok/internal/apperr"
)

// User-facing validation messages.
const (
	MsgMissingFields  = "필수 정보를 모두 입력해주세요."
	MsgCheckTimes     = "시간 설정을 확인해주세요."
	MsgStartTimeError = "시작 시간은 종료 시간보다 빨라야 합니다."
	MsgEndTimeError   = "종료 시간은 시작 시간보다 늦어야 합니다."
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// TimeErrors returns the start/end error messages for the given clock times.
// Both messages are set whenever start is not strictly before end; if either
// side is empty the comparison is skipped and no errors are returned.
func TimeErrors(start, end string) (startErr, endErr string) {
	if start == "" || end == "" {
		return "", ""
	}
	if start >= end {
		return MsgStartTimeError, MsgEndTimeError
	}
	return "", ""
}

// Validate checks an event before it is allowed anywhere near the store.
// An absent repeat defaults to RepeatNone, matching the wire contract.
// Missing required fields and an invalid start/end ordering are both
// reported as apperr.ErrInvalid with the user-facing message attached.
func (ev *Event) Validate() error {
	if ev.Repeat.Type == "" {
		ev.Repeat.Type = RepeatNone
	}
	if ev.Title == "" || ev.Date == "" || ev.StartTime == "" || ev.EndTime == "" {
		return fmt.Errorf("%w: %s", apperr.ErrInvalid, MsgMissingFields)
	}
	if startErr, _ := TimeErrors(ev.StartTime, ev.EndTime); startErr != "" {
		return fmt.Errorf("%w: %s", apperr.ErrInvalid, MsgCheckTimes)
	}
	if err := ev.validateShape(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	return nil
}

func (ev Event) validateShape() error {
	return validation.ValidateStruct(&ev,
		validation.Field(&ev.Date, validation.Match(datePattern)),
		validation.Field(&ev.StartTime, validation.Match(clockPattern)),
		validation.Field(&ev.EndTime, validation.Match(clockPattern)),
		validation.Field(&ev.Repeat, validation.By(validateRepeat)),
		validation.Field(&ev.NotificationTime, validation.Min(0)),
	)
}

func validateRepeat(value interface{}) error {
	r, _ := value.(Repeat)
	if err := validation.Validate(string(r.Type), validation.Required, validation.In(
		string(RepeatNone), string(RepeatDaily), string(RepeatWeekly),
		string(RepeatMonthly), string(RepeatYearly),
	)); err != nil {
		return fmt.Errorf("repeat type: %v", err)
	}
	if r.Type != RepeatNone && r.Interval < 1 {
		return fmt.Errorf("repeat interval must be positive")
	}
	if r.EndDate != "" && !datePattern.MatchString(r.EndDate) {
		return fmt.Errorf("repeat end date must be YYYY-MM-DD")
	}
	return nil
}
