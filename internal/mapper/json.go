package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// jsonList marshals a string slice to a jsonb column value. Nil slices
// become empty arrays so columns never hold SQL NULL.
func jsonList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

func stringList(data datatypes.JSON) []string {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

func jsonObject(values map[string]interface{}) datatypes.JSON {
	if values == nil {
		values = map[string]interface{}{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}

func objectMap(data datatypes.JSON) map[string]interface{} {
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return map[string]interface{}{}
	}
	return values
}

// optionalTime maps a zero time to nil for entity fields that track
// whether an update ever happened.
func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
