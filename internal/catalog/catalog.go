/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecretType is one requestable entry in the catalog.
type SecretType struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Catalog is the static enumeration of requestable secret identifiers.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	entries []SecretType
	byID    map[string]SecretType
}

// defaultSecretTypes mirror the reference catalog shipped with the UI.
var defaultSecretTypes = []SecretType{
	{ID: "DB_PROD_PASS", Name: "Production DB password", Description: "Access to the production analytics database"},
	{ID: "ACME_API_KEY", Name: "Acme Service API key", Description: "Key for the external Acme service integration"},
	{ID: "LOGGING_DASH", Name: "Logging dashboard password", Description: "Password for the monitoring and logging dashboard"},
	{ID: "S3_BUCKET_KEY", Name: "S3 bucket key", Description: "Access key for the media S3 bucket"},
}

type catalogYAML struct {
	SecretTypes []SecretType `yaml:"secretTypes"`
}

// Default returns a catalog holding the compiled-in secret types.
func Default() *Catalog {
	c, _ := build(defaultSecretTypes)
	return c
}

// LoadFromFile builds a catalog from a YAML file of the form:
//
//	secretTypes:
//	  - id: DB_PROD_PASS
//	    name: Production DB password
//	    description: ...
func LoadFromFile(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog file path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var doc catalogYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(doc.SecretTypes) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no secret types", path)
	}

	return build(doc.SecretTypes)
}

func build(entries []SecretType) (*Catalog, error) {
	byID := make(map[string]SecretType, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has an empty id", e.Name)
		}
		if _, exists := byID[e.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog entry: %s", e.ID)
		}
		byID[e.ID] = e
	}
	return &Catalog{entries: entries, byID: byID}, nil
}

// Lookup returns the entry for the given id and whether it exists.
func (c *Catalog) Lookup(id string) (SecretType, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// List returns the catalog entries in declaration order.
func (c *Catalog) List() []SecretType {
	out := make([]SecretType, len(c.entries))
	copy(out, c.entries)
	return out
}
