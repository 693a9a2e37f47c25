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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskBatch(t *testing.T) {
	batch := &Batch{
		Columns: []string{"student_id", "name", "email_address"},
		Rows: [][]string{
			{"1234", "John Smith", "j.smith@email.com"},
			{"5678", "Jane Doe", "j.doe@email.com"},
		},
	}

	err := MaskBatch(batch, []string{"name", "email_address"})
	require.NoError(t, err)

	for _, row := range batch.Rows {
		assert.Equal(t, MaskValue, row[1])
		assert.Equal(t, MaskValue, row[2])
	}
	assert.Equal(t, "1234", batch.Rows[0][0])
	assert.Equal(t, "5678", batch.Rows[1][0])
}

func TestMaskBatch_Idempotent(t *testing.T) {
	batch := &Batch{
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"1", "John"}},
	}

	require.NoError(t, MaskBatch(batch, []string{"name"}))
	require.NoError(t, MaskBatch(batch, []string{"name"}))
	assert.Equal(t, MaskValue, batch.Rows[0][1])
}

func TestMaskBatch_FieldNotFound(t *testing.T) {
	batch := &Batch{
		Columns: []string{"student_id", "name"},
		Rows:    [][]string{{"1234", "John Smith"}},
	}

	e := MaskBatch(batch, []string{"name", "cohort"})
	require.Error(t, e)

	var fnf *FieldNotFoundError
	require.True(t, errors.As(e, &fnf))
	assert.Equal(t, "cohort", fnf.Field)
	assert.Contains(t, e.Error(), "cohort")
}

func TestMaskBatch_EmptyBatchStillValidatesFields(t *testing.T) {
	batch := &Batch{Columns: []string{"id", "name"}}

	require.NoError(t, MaskBatch(batch, []string{"name"}))

	var fnf *FieldNotFoundError
	e := MaskBatch(batch, []string{"missing"})
	require.True(t, errors.As(e, &fnf))
}
