// Copyright 2025 Veil
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	descriptorFileKey   = "file_to_obfuscate"
	descriptorFieldsKey = "pii_fields"

	s3UrlScheme = "s3://"
)

// Descriptor is the external request naming the source object and the
// fields to redact.
type Descriptor struct {
	Bucket string
	Key    string
	Fields []string
}

// ParseDescriptor validates that both required keys are present, splits the
// s3://bucket/key url into its parts and surfaces the field list verbatim.
// No per-field validation happens here; an unknown field is a data error
// detected by the masking step.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON input")
	}
	doc := gjson.ParseBytes(data)

	url := doc.Get(descriptorFileKey)
	fields := doc.Get(descriptorFieldsKey)
	if !url.Exists() || !fields.Exists() {
		return nil, fmt.Errorf("missing required keys in JSON input, expected %q and %q",
			descriptorFileKey, descriptorFieldsKey)
	}
	if !fields.IsArray() {
		return nil, fmt.Errorf("%q must be an array of field names", descriptorFieldsKey)
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(url.String(), s3UrlScheme), "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid object url %q, expected s3://bucket/key", url.String())
	}

	var fieldList []string
	for _, f := range fields.Array() {
		fieldList = append(fieldList, f.String())
	}

	return &Descriptor{Bucket: bucket, Key: key, Fields: fieldList}, nil
}
