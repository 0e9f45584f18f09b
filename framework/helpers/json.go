package helpers

import "encoding/json"

// AsJSON is just a shortcut for calling json.Marshal and taking only the first result.
func AsJSON(value interface{}) []byte {
	ret, _ := json.Marshal(value)
	return ret
}

// AsJSONString calls json.Marshal and returns the result as a string.
func AsJSONString(value interface{}) string { return string(AsJSON(value)) }
