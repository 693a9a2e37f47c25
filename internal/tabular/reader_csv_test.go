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

package tabular

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, r BatchReader) []*Batch {
	t.Helper()
	var batches []*Batch
	for {
		b, err := r.Next()
		if err == io.EOF {
			return batches
		}
		require.NoError(t, err)
		batches = append(batches, b)
	}
}

func TestCSVReader_Chunking(t *testing.T) {
	content := "id,name\n1,a\n2,b\n3,c\n4,d\n5,e\n"

	tests := []struct {
		name      string
		chunkSize int
		batchLens []int
	}{
		{name: "size one", chunkSize: 1, batchLens: []int{1, 1, 1, 1, 1}},
		{name: "partial last", chunkSize: 2, batchLens: []int{2, 2, 1}},
		{name: "single batch", chunkSize: 5, batchLens: []int{5}},
		{name: "oversized", chunkSize: 100, batchLens: []int{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := drain(t, NewCSVReader(strings.NewReader(content), tt.chunkSize))
			require.Len(t, batches, len(tt.batchLens))
			for i, b := range batches {
				assert.Equal(t, []string{"id", "name"}, b.Columns)
				assert.Len(t, b.Rows, tt.batchLens[i])
			}
		})
	}
}

func TestCSVReader_HeaderStrippedOnce(t *testing.T) {
	batches := drain(t, NewCSVReader(strings.NewReader("id,name\n1,a\n2,b\n"), 1))
	require.Len(t, batches, 2)
	assert.Equal(t, [][]string{{"1", "a"}}, batches[0].Rows)
	assert.Equal(t, [][]string{{"2", "b"}}, batches[1].Rows)
}

func TestCSVReader_HeaderOnly(t *testing.T) {
	batches := drain(t, NewCSVReader(strings.NewReader("id,name\n"), 10))
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"id", "name"}, batches[0].Columns)
	assert.Empty(t, batches[0].Rows)
}

func TestCSVReader_EmptyInput(t *testing.T) {
	r := NewCSVReader(strings.NewReader(""), 10)
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCSVReader_Malformed(t *testing.T) {
	r := NewCSVReader(strings.NewReader("id,name\n1,a,extra\n"), 10)
	_, err := r.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}
