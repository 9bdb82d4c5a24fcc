package homework

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatcatfablab/hwbot/types"
)

const (
	keyHomeworks   = "homeworks"
	keyName        = "homework_name"
	keyCurrentDate = "current_date"

	statusApproved  = "approved"
	statusReviewing = "reviewing"
	statusRejected  = "rejected"

	changedFmt = `Изменился статус проверки работы "%s". %s`
)

var ErrUndocumentedStatus = errors.New("homework status is not documented")

// KeyError reports a required key missing from a JSON object.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q is missing", e.Key)
}

// TypeError reports a JSON value of the wrong kind.
type TypeError struct {
	What string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s must be %s, got %T", e.What, e.Want, e.Got)
}

// Verdicts maps each documented status to the text sent to the chat.
type Verdicts map[string]string

func DefaultVerdicts() Verdicts {
	return Verdicts{
		statusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		statusReviewing: "Работа взята на проверку ревьюером.",
		statusRejected:  "Работа проверена: у ревьюера есть замечания.",
	}
}

// ParseStatus builds the notification text for hw.
func (v Verdicts) ParseStatus(hw types.Homework) (string, error) {
	raw, ok := hw[keyName]
	if !ok {
		return "", &KeyError{Key: keyName}
	}
	name, ok := raw.(string)
	if !ok {
		return "", &TypeError{What: keyName, Want: "a string", Got: raw}
	}

	status := hw.Status()
	verdict, ok := v[status]
	if status == "" || !ok {
		return "", fmt.Errorf("%w: %q", ErrUndocumentedStatus, status)
	}

	return fmt.Sprintf(changedFmt, name, verdict), nil
}

// CheckResponse validates the shape of a decoded homework_statuses answer.
// The homeworks themselves are not inspected and an empty list is valid.
func CheckResponse(resp any) error {
	_, err := homeworks(resp)
	return err
}

// Latest returns the most recent homework of a validated response. The API
// lists homeworks newest first, so that is the first element. ok is false
// when the list is empty.
func Latest(resp any) (hw types.Homework, ok bool, err error) {
	list, err := homeworks(resp)
	if err != nil {
		return nil, false, err
	}
	if len(list) == 0 {
		return nil, false, nil
	}

	obj, isObj := list[0].(map[string]any)
	if !isObj {
		return nil, false, &TypeError{What: "homework", Want: "an object", Got: list[0]}
	}
	return types.Homework(obj), true, nil
}

// CurrentDate returns the server time reported alongside the homeworks.
func CurrentDate(resp any) (time.Time, bool) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return time.Time{}, false
	}
	// encoding/json decodes every number into a float64
	secs, ok := obj[keyCurrentDate].(float64)
	if !ok || secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(secs), 0), true
}

func homeworks(resp any) ([]any, error) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return nil, &TypeError{What: "response", Want: "an object", Got: resp}
	}

	raw, ok := obj[keyHomeworks]
	if !ok {
		return nil, &KeyError{Key: keyHomeworks}
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &TypeError{What: keyHomeworks, Want: "a list", Got: raw}
	}
	return list, nil
}
