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

package storages

import (
	"context"
	"io"
)

// Storager is the single-object storage surface the pipeline consumes.
// Errors returned by implementations are upstream I/O errors: they are
// propagated to callers as-is, never reinterpreted.
type Storager interface {
	// GetObject - returns a ReadCloser for the object at the provided path
	GetObject(ctx context.Context, filePath string) (reader io.ReadCloser, err error)
	// PutObject - writes the body to the provided object path
	PutObject(ctx context.Context, filePath string, body io.Reader) error
	// Exists - check object existence
	Exists(ctx context.Context, filePath string) (bool, error)
}
