package dto

import "encoding/json"

// Response is the uniform envelope: {"error": string|null} with the
// payload's fields flattened alongside when present. The core returns
// plain values and errors; flattening happens only here, at the
// boundary.
type Response struct {
	Error string
	Data  interface{}
}

func Ok(data interface{}) Response {
	return Response{Data: data}
}

func Errorf(msg string) Response {
	return Response{Error: msg}
}

func (r Response) MarshalJSON() ([]byte, error) {
	out := map[string]json.RawMessage{}

	if r.Data != nil {
		raw, err := json.Marshal(r.Data)
		if err != nil {
			return nil, err
		}
		// only object payloads can be flattened; everything this
		// server returns is an object
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
	}

	if r.Error != "" {
		raw, err := json.Marshal(r.Error)
		if err != nil {
			return nil, err
		}
		out["error"] = raw
	} else {
		out["error"] = json.RawMessage("null")
	}

	return json.Marshal(out)
}
