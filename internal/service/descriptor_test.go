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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptor(t *testing.T) {
	data := []byte(`{
		"file_to_obfuscate": "s3://my-bucket/new_data/file1.csv",
		"pii_fields": ["name", "email_address"]
	}`)

	d, err := ParseDescriptor(data)
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", d.Bucket)
	assert.Equal(t, "new_data/file1.csv", d.Key)
	assert.Equal(t, []string{"name", "email_address"}, d.Fields)
}

func TestParseDescriptor_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `not a json`},
		{name: "missing url", data: `{"pii_fields": ["name"]}`},
		{name: "missing fields", data: `{"file_to_obfuscate": "s3://b/k.csv"}`},
		{name: "fields not an array", data: `{"file_to_obfuscate": "s3://b/k.csv", "pii_fields": "name"}`},
		{name: "url without key", data: `{"file_to_obfuscate": "s3://bucket-only", "pii_fields": []}`},
		{name: "empty url", data: `{"file_to_obfuscate": "", "pii_fields": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptor([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestParseDescriptor_EmptyFieldList(t *testing.T) {
	d, err := ParseDescriptor([]byte(`{"file_to_obfuscate": "s3://b/k.csv", "pii_fields": []}`))
	require.NoError(t, err)
	assert.Empty(t, d.Fields)
}
