package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/grovetools/recfix/config"
	"github.com/grovetools/recfix/internal/event"
	"github.com/invopop/jsonschema"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&config.Config{})
	schema.Title = "recfix Configuration"
	schema.Description = "Schema for the 'recfix' extension in grove.yml."
	write("recfix.schema.json", schema)

	records := &jsonschema.Reflector{
		ExpandedStruct: true,
		FieldNameTag:   "json",
	}
	recordSchema := records.Reflect(&event.Record{})
	recordSchema.Title = "Canonical Event Record"
	recordSchema.Description = "Shape of every item written back to the media invites table."
	write("event.schema.json", recordSchema)
}

func write(path string, schema *jsonschema.Schema) {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", path)
}
