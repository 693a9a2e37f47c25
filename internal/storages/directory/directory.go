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

package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

const (
	dirMode  os.FileMode = 0750
	fileMode os.FileMode = 0640
)

type Config struct {
	Path string `mapstructure:"path"`
}

// Storage keeps objects as plain files under a root directory. It backs
// local runs and tests where an S3 bucket is not available.
type Storage struct {
	cwd string
}

func NewStorage(cfg *Config) (*Storage, error) {
	fileInfo, err := os.Stat(cfg.Path)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		return nil, errors.New("received directory path is a file")
	}
	return &Storage{cwd: cfg.Path}, nil
}

func (s *Storage) GetObject(ctx context.Context, filePath string) (io.ReadCloser, error) {
	return os.Open(path.Join(s.cwd, filePath))
}

func (s *Storage) PutObject(ctx context.Context, filePath string, body io.Reader) error {
	target := path.Join(s.cwd, filePath)
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("unable to create file: %w", err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("error writing object body: %w", err)
	}
	return nil
}

func (s *Storage) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := os.Stat(path.Join(s.cwd, filePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
