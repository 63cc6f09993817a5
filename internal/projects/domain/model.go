package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Project is a single carbon-saving initiative as held by the project store.
// It is storage-agnostic and shared by the client, the repositories and the HTTP layer.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	CarbonSaved float64   `json:"carbonSaved"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProject is the payload submitted to create a project. The store assigns the id.
type NewProject struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	CarbonSaved float64 `json:"carbonSaved"`
}

// wireProject is the lenient shape a store may send back.
type wireProject struct {
	ID          json.RawMessage `json:"id"`
	MongoID     json.RawMessage `json:"_id"`
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	Location    json.RawMessage `json:"location"`
	CarbonSaved json.RawMessage `json:"carbonSaved"`
	CreatedAt   json.RawMessage `json:"createdAt"`
}

// UnmarshalJSON accepts whatever a store sends: ids under "id" or "_id" as
// strings or numbers, non-string text fields, and carbonSaved in any shape.
func (p *Project) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Project{}
		return nil
	}

	var w wireProject
	if err := json.Unmarshal(data, &w); err != nil {
		// Unknown element shapes render as an all-defaults card.
		if json.Valid(data) {
			*p = Project{}
			return nil
		}
		return err
	}

	id := rawID(w.ID)
	if id == "" {
		id = rawID(w.MongoID)
	}

	*p = Project{
		ID:          id,
		Name:        text(decodeValue(w.Name)),
		Description: text(decodeValue(w.Description)),
		Location:    text(decodeValue(w.Location)),
		CarbonSaved: CoerceNumber(decodeValue(w.CarbonSaved)),
	}
	if len(w.CreatedAt) > 0 {
		var ts time.Time
		if json.Unmarshal(w.CreatedAt, &ts) == nil {
			p.CreatedAt = ts
		}
	}
	return nil
}

// decodeValue decodes one field, keeping numbers as json.Number so literals
// outside the float64 range do not fail the whole project.
func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func rawID(raw json.RawMessage) string {
	switch id := decodeValue(raw).(type) {
	case string:
		return id
	case json.Number:
		if f, err := id.Float64(); err == nil {
			return FormatNumber(f)
		}
		return id.String()
	case map[string]any:
		// Extended JSON object ids: {"$oid": "..."}
		if oid, ok := id["$oid"].(string); ok {
			return oid
		}
	}
	return ""
}

// text renders a display field. Falsy values (0, false, null) count as absent.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		if f == 0 {
			return ""
		}
		return FormatNumber(f)
	case float64:
		if t == 0 {
			return ""
		}
		return FormatNumber(t)
	case bool:
		if t {
			return "true"
		}
	}
	return ""
}
