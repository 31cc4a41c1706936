package adminservice

import (
	"fmt"
	"strings"
)

// ParseBool parses the boolean values admin services send. It accepts true/false, yes/no, on/off
// and 1/0 in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("the value %q is of the wrong type, expected a boolean", s)
}
