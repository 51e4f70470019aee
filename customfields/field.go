package customfields

import "fmt"

// DataType is the server-side type of a custom field. It is serialized by name.
type DataType string

const (
	String       DataType = "string"
	URL          DataType = "url"
	Date         DataType = "date"
	Boolean      DataType = "boolean"
	Integer      DataType = "integer"
	Float        DataType = "float"
	Monetary     DataType = "monetary"
	DocumentLink DataType = "documentlink"
	Select       DataType = "select"
)

var dataTypeValues = map[DataType]int{
	String:       1,
	URL:          2,
	Date:         3,
	Boolean:      4,
	Integer:      5,
	Float:        6,
	Monetary:     7,
	DocumentLink: 8,
	Select:       9,
}

// Value returns the numeric identifier of the type, or 0 for types this client does not know.
func (d DataType) Value() int {
	return dataTypeValues[d]
}

// Validate checks that d is a type the codec can encode.
func (d DataType) Validate() error {
	if _, ok := dataTypeValues[d]; !ok {
		return fmt.Errorf("unsupported custom field data type: %q", d)
	}
	return nil
}

// Field describes a custom field configured on the server.
type Field struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	DataType  DataType   `json:"data_type"`
	ExtraData *ExtraData `json:"extra_data,omitempty"`
}

// ExtraData carries type-specific settings.
type ExtraData struct {
	SelectOptions   []string `json:"select_options,omitempty"`
	DefaultCurrency *string  `json:"default_currency,omitempty"`
}

// Creation is the payload for creating a custom field.
type Creation struct {
	Name      string     `json:"name"`
	DataType  DataType   `json:"data_type"`
	ExtraData *ExtraData `json:"extra_data,omitempty"`
}

// NewSelect returns the payload for a select field offering options in order.
func NewSelect(name string, options ...string) Creation {
	return Creation{
		Name:      name,
		DataType:  Select,
		ExtraData: &ExtraData{SelectOptions: options},
	}
}
