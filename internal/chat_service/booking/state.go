package booking

// Field names one slot of the booking form, or the terminal step.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldComplete Field = "complete"
)

// collectOrder is the fixed order in which the form fields are filled.
var collectOrder = []Field{FieldName, FieldEmail, FieldDate, FieldTime}

// State is the in-progress booking form for one conversation. It exists
// only while incomplete; its presence routes the conversation's turns
// into the flow.
type State struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Step  Field  `json:"step"` // the field awaited from the next turn
}

// NewState returns an empty form awaiting the name field.
func NewState() *State {
	return &State{Step: FieldName}
}

// Set stores value into the named field. Unknown fields (including
// "complete") are ignored.
func (s *State) Set(field Field, value string) {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldDate:
		s.Date = value
	case FieldTime:
		s.Time = value
	}
}

// get returns the current value of the named field.
func (s *State) get(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldDate:
		return s.Date
	case FieldTime:
		return s.Time
	}
	return ""
}

// NextUnset returns the first unfilled field in collection order, or
// FieldComplete when every field holds a value.
func (s *State) NextUnset() Field {
	for _, field := range collectOrder {
		if s.get(field) == "" {
			return field
		}
	}
	return FieldComplete
}
