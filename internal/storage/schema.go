package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const storeSchemaURL = "store.schema.json"

//go:embed schema/store.schema.json
var storeSchema []byte

var compiledStoreSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(storeSchemaURL, bytes.NewReader(storeSchema)); err != nil {
		return nil, fmt.Errorf("add store schema: %w", err)
	}
	return compiler.Compile(storeSchemaURL)
})

// VerifyDocument checks raw store bytes against the embedded schema.
func VerifyDocument(raw []byte) error {
	schema, err := compiledStoreSchema()
	if err != nil {
		return fmt.Errorf("compile store schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
