package flow

import "time"

// Draft is the in-progress state of one user's flow. Answers accumulate
// in Data under the field names the terminal step reads back.
type Draft struct {
	UserID    int64          `json:"user_id" bson:"user_id"`
	ChatID    int64          `json:"chat_id" bson:"chat_id"`
	FlowID    FlowID         `json:"flow_id" bson:"flow_id"`
	Step      StepID         `json:"step" bson:"step"`
	Language  string         `json:"language" bson:"language"`
	Data      map[string]any `json:"data" bson:"data"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewDraft creates a draft positioned at a flow's initial step.
func NewDraft(userID, chatID int64, flowID FlowID, initialStep StepID) *Draft {
	return &Draft{
		UserID:    userID,
		ChatID:    chatID,
		FlowID:    flowID,
		Step:      initialStep,
		Language:  "en",
		Data:      make(map[string]any),
		UpdatedAt: time.Now(),
	}
}

// GetString retrieves a string value from the draft data.
func (d *Draft) GetString(key string) string {
	if v, ok := d.Data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an integer value from the draft data.
func (d *Draft) GetInt(key string) int {
	if v, ok := d.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case int32:
			return int(val)
		case int64:
			return int(val)
		case float64:
			return int(val)
		}
	}
	return 0
}

// GetFloat retrieves a float value from the draft data.
func (d *Draft) GetFloat(key string) float64 {
	if v, ok := d.Data[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case int:
			return float64(val)
		case int64:
			return float64(val)
		}
	}
	return 0
}

// GetStrings retrieves a string slice from the draft data. Mongo round
// trips slices as []any, both shapes are handled.
func (d *Draft) GetStrings(key string) []string {
	v, ok := d.Data[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Set stores a value in the draft data.
func (d *Draft) Set(key string, value any) {
	if d.Data == nil {
		d.Data = make(map[string]any)
	}
	d.Data[key] = value
}

// MergeData merges additional data into the draft.
func (d *Draft) MergeData(data map[string]any) {
	if d.Data == nil {
		d.Data = make(map[string]any)
	}
	for k, v := range data {
		d.Data[k] = v
	}
}
