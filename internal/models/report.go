package models

import "encoding/json"

// DeviceReport is an incoming device POST after lenient field extraction.
// Devices in the field ship odd payloads; missing or non-string fields are
// defaulted rather than rejected. Raw holds the request body verbatim.
type DeviceReport struct {
	Type   string
	Status string
	Data   string
	Raw    json.RawMessage
}

// ParseReport extracts the known fields from a report body. Only a body that
// is not a JSON object at all is an error.
func ParseReport(body []byte) (DeviceReport, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return DeviceReport{}, err
	}

	report := DeviceReport{Raw: append(json.RawMessage(nil), body...)}
	if s, ok := fields["type"].(string); ok {
		report.Type = s
	}
	if s, ok := fields["status"].(string); ok {
		report.Status = s
	}
	if s, ok := fields["data"].(string); ok {
		report.Data = s
	}
	return report, nil
}
