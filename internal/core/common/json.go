package common

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseJSON pulls the outermost JSON object out of a model reply and
// unmarshals it into T. Replies wrapped in markdown fences or surrounded by
// chatter are accepted. Errors are unmarked; the caller decides whose
// fault a bad reply is.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.IndexByte(response, '{')
	if start == -1 {
		return zero, errors.New("no JSON object found in model response")
	}
	end := strings.LastIndexByte(response, '}')
	if end < start {
		return zero, errors.New("unterminated JSON object in model response")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, errors.Wrap(err, "unmarshal model response")
	}

	return result, nil
}
