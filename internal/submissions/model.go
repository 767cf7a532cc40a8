package submissions

import (
	"bytes"
	"encoding/json"
)

// Submission is one row of the form backend's response sheet.
type Submission struct {
	Timestamp       string `json:"Timestamp"`
	Name            string `json:"Name"`
	Email           string `json:"Email"`
	ContactNumber   string `json:"Contact Number"`
	CompleteAddress string `json:"Complete Address"`
	Message         string `json:"Message"`
}

// cell accepts strings, numbers and null; spreadsheet backends send phone
// columns as numbers once the leading zero has been dropped.
type cell string

func (c *cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = cell(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			// booleans and other scalars are kept verbatim
			*c = cell(data)
			return nil
		}
		*c = cell(n.String())
		return nil
	}
}

// UnmarshalJSON tolerates non-string cells in any column.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var aux struct {
		Timestamp       cell `json:"Timestamp"`
		Name            cell `json:"Name"`
		Email           cell `json:"Email"`
		ContactNumber   cell `json:"Contact Number"`
		CompleteAddress cell `json:"Complete Address"`
		Message         cell `json:"Message"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Submission{
		Timestamp:       string(aux.Timestamp),
		Name:            string(aux.Name),
		Email:           string(aux.Email),
		ContactNumber:   string(aux.ContactNumber),
		CompleteAddress: string(aux.CompleteAddress),
		Message:         string(aux.Message),
	}
	return nil
}

// envelope is the getData response shape.
type envelope struct {
	Result  string       `json:"result"`
	Data    []Submission `json:"data"`
	Message string       `json:"message"`
}
