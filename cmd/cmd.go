package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

func makeUrl(serverUrl string, path string) string {
	return strings.TrimRight(serverUrl, "/") + path
}

// readJsonError extracts {"msg": ...} from an API error. Bodies without a message, such as
// the empty 401 of basic auth, fall back to the status text.
func readJsonError(status int, body []byte) error {
	restErr := struct {
		Msg string `json:"msg"`
	}{}
	if err := json.Unmarshal(body, &restErr); err == nil && restErr.Msg != "" {
		return errors.New(restErr.Msg)
	}

	if text := http.StatusText(status); text != "" {
		return errors.New(strings.ToLower(text))
	}
	return fmt.Errorf("unexpected status %d", status)
}
