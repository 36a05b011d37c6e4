// Package event normalizes loosely-shaped media invite items into the
// canonical event record schema served by the events query API.
package event

import "encoding/json"

// Bilingual holds the English and Chinese renderings of a text field.
type Bilingual struct {
	En string `json:"en" yaml:"en" dynamodbav:"en"`
	Zh string `json:"zh" yaml:"zh" dynamodbav:"zh"`
}

// Same returns a Bilingual carrying s in both language slots.
func Same(s string) Bilingual {
	return Bilingual{En: s, Zh: s}
}

// Speaker is a presenter at an event.
type Speaker struct {
	Name  Bilingual `json:"name" yaml:"name" dynamodbav:"name"`
	Theme Bilingual `json:"theme" yaml:"theme" dynamodbav:"theme"`
}

// VIP is a guest of honour at an event.
type VIP struct {
	Name Bilingual `json:"name" yaml:"name" dynamodbav:"name"`
	Role Bilingual `json:"role" yaml:"role" dynamodbav:"role"`
}

// Record is an event in canonical form.
type Record struct {
	ID             string     `json:"id" yaml:"id" dynamodbav:"id" jsonschema:"minLength=1"`
	EventName      Bilingual  `json:"event_name" yaml:"event_name" dynamodbav:"event_name"`
	Location       Bilingual  `json:"location" yaml:"location" dynamodbav:"location"`
	Description    Bilingual  `json:"description" yaml:"description" dynamodbav:"description"`
	Time           Bilingual  `json:"time" yaml:"time" dynamodbav:"time"`
	Date           string     `json:"date" yaml:"date" dynamodbav:"date"`
	Language       string     `json:"language" yaml:"language" dynamodbav:"language"`
	Hyperlink      string     `json:"hyperlink" yaml:"hyperlink" dynamodbav:"hyperlink"`
	Transportation *Bilingual `json:"transportation,omitempty" yaml:"transportation,omitempty" dynamodbav:"transportation,omitempty"`
	Category       []string   `json:"category" yaml:"category" dynamodbav:"category"`
	Speakers       []Speaker  `json:"speakers" yaml:"speakers" dynamodbav:"speakers"`
	VIPs           []VIP      `json:"vips" yaml:"vips" dynamodbav:"vips"`
}

// Item returns r in the generic item shape read back from a table.
func (r Record) Item() (map[string]any, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var item map[string]any
	if err := json.Unmarshal(b, &item); err != nil {
		return nil, err
	}
	return item, nil
}
