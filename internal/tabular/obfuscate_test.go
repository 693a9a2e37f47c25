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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentsCsv = "student_id,name,course,graduation_date,email_address\n" +
	"1234,John Smith,Software,2024-03-31,j.smith@email.com\n"

func TestObfuscate_Csv(t *testing.T) {
	out, err := Obfuscate([]byte(studentsCsv), []string{"name", "email_address"}, FormatCsv)
	require.NoError(t, err)

	assert.Equal(t,
		"student_id,name,course,graduation_date,email_address\n"+
			"1234,***,Software,2024-03-31,***\n",
		out.String())
}

func TestObfuscate_FieldNotFound(t *testing.T) {
	_, err := Obfuscate([]byte(studentsCsv), []string{"name", "cohort"}, FormatCsv)
	require.Error(t, err)

	var fnf *FieldNotFoundError
	require.True(t, errors.As(err, &fnf))
	assert.Equal(t, "cohort", fnf.Field)
	assert.Contains(t, err.Error(), "error processing data chunk")
}

func TestObfuscate_UnsupportedFormats(t *testing.T) {
	_, err := Obfuscate([]byte(studentsCsv), []string{"name"}, Format("xlsx"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Obfuscate([]byte(studentsCsv), []string{"name"}, FormatCsv,
		WithTargetFormat(Format("xlsx")))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestObfuscate_NonPositiveChunkSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		_, err := Obfuscate([]byte(studentsCsv), []string{"name"}, FormatCsv, WithChunkSize(size))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
	}
}

func TestObfuscate_ChunkSizeInvariance(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id,name,email\n")
	for i := 0; i < 23; i++ {
		fmt.Fprintf(&sb, "%d,person %d,p%d@email.com\n", i, i, i)
	}
	content := []byte(sb.String())

	reference, err := Obfuscate(content, []string{"name", "email"}, FormatCsv)
	require.NoError(t, err)

	for _, size := range []int{1, 7, 23} {
		out, err := Obfuscate(content, []string{"name", "email"}, FormatCsv, WithChunkSize(size))
		require.NoError(t, err)
		assert.Equal(t, reference.String(), out.String(), "chunk size %d", size)
	}
}

func TestObfuscate_CsvToJson(t *testing.T) {
	out, err := Obfuscate([]byte(studentsCsv), []string{"name", "email_address"},
		FormatCsv, WithTargetFormat(FormatJson))
	require.NoError(t, err)

	assert.Equal(t,
		"{\"student_id\":1234,\"name\":\"***\",\"course\":\"Software\","+
			"\"graduation_date\":\"2024-03-31\",\"email_address\":\"***\"}\n",
		out.String())
}

func TestObfuscate_JsonSource(t *testing.T) {
	content := `[
		{"student_id": 1234, "name": "John Smith", "email_address": "j.smith@email.com"},
		{"student_id": 5678, "name": "Jane Doe", "email_address": "j.doe@email.com"}
	]`

	out, err := Obfuscate([]byte(content), []string{"name", "email_address"}, FormatJson,
		WithTargetFormat(FormatCsv), WithChunkSize(1))
	require.NoError(t, err)

	assert.Equal(t,
		"student_id,name,email_address\n"+
			"1234,***,***\n"+
			"5678,***,***\n",
		out.String())
}

func TestObfuscate_ParquetSource(t *testing.T) {
	data := makeParquet(t, "student_id,name,email\n1234,John Smith,j.smith@email.com\n")

	out, err := Obfuscate(data, []string{"name", "email"}, FormatParquet,
		WithTargetFormat(FormatCsv))
	require.NoError(t, err)

	// Parquet stores columns in name-sorted order.
	assert.Equal(t,
		"email,name,student_id\n"+
			"***,***,1234\n",
		out.String())
}

func TestObfuscate_DefaultTargetMatchesSource(t *testing.T) {
	content := `[{"id": 1, "name": "John"}]`

	out, err := Obfuscate([]byte(content), []string{"name"}, FormatJson)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1,\"name\":\"***\"}\n", out.String())
}

func TestObfuscate_RoundTripConversions(t *testing.T) {
	masked, err := Obfuscate([]byte(studentsCsv), []string{"name", "email_address"}, FormatCsv)
	require.NoError(t, err)

	jsonOut, err := Convert(masked.Bytes(), FormatJson)
	require.NoError(t, err)
	jsonBack := drain(t, NewJSONReader(newLinesAsArray(jsonOut.String()), DefaultChunkSize))
	require.Len(t, jsonBack, 1)
	assert.Equal(t,
		[]string{"student_id", "name", "course", "graduation_date", "email_address"},
		jsonBack[0].Columns)
	assert.Equal(t, [][]string{{"1234", "***", "Software", "2024-03-31", "***"}}, jsonBack[0].Rows)

	parquetOut, err := Convert(masked.Bytes(), FormatParquet)
	require.NoError(t, err)
	table := readParquetTable(t, parquetOut.Bytes(), DefaultChunkSize)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1234", cell(t, table, 0, "student_id"))
	assert.Equal(t, "***", cell(t, table, 0, "name"))
	assert.Equal(t, "Software", cell(t, table, 0, "course"))
	assert.Equal(t, "2024-03-31", cell(t, table, 0, "graduation_date"))
	assert.Equal(t, "***", cell(t, table, 0, "email_address"))
}

func TestObfuscate_EmptyInput(t *testing.T) {
	out, err := Obfuscate(nil, nil, FormatCsv)
	require.NoError(t, err)
	assert.Zero(t, out.Len())
}

// newLinesAsArray rewraps JSON-lines output as a JSON array so it can be
// fed back through the streaming JSON reader.
func newLinesAsArray(lines string) *strings.Reader {
	items := strings.Split(strings.TrimRight(lines, "\n"), "\n")
	return strings.NewReader("[" + strings.Join(items, ",") + "]")
}
