package backend

import (
	"encoding/json"
	"regexp"
)

// The backend occasionally emits trailing commas (the notification list is the
// usual offender). One repair pass is attempted: strip commas sitting directly
// before a closing bracket or brace, then re-parse.
var trailingComma = regexp.MustCompile(`,\s*([\]}])`)

// DecodeTolerant parses raw as JSON into v. Well-formed input decodes exactly
// as encoding/json would; malformed input gets the single trailing-comma
// repair and one retry. Anything still invalid after that is an error.
func DecodeTolerant(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	repaired := trailingComma.ReplaceAll(raw, []byte("$1"))
	return json.Unmarshal(repaired, v)
}
