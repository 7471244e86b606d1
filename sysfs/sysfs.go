/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sysfs

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Reader reads single value text attributes from sysfs. Every failure is
// reported as unavailable and logged at debug level, never returned.
type Reader struct {
	fs   afero.Fs
	root string
}

// NewReader returns a Reader over fs. When root is not empty every path is
// resolved below it, which lets a captured sysfs tree be replayed.
func NewReader(fs afero.Fs, root string) *Reader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Reader{fs: fs, root: root}
}

func (r *Reader) resolve(path string) string {
	if r.root == "" {
		return path
	}
	return filepath.Join(r.root, path)
}

// ReadText returns the trimmed content of the file at path
func (r *Reader) ReadText(path string) (string, bool) {
	b, err := afero.ReadFile(r.fs, r.resolve(path))
	if err != nil {
		zap.L().Debug("error reading sysfs attribute", zap.String("path", path), zap.Error(err))
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// Exists reports whether path is a regular file
func (r *Reader) Exists(path string) bool {
	fi, err := r.fs.Stat(r.resolve(path))
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// FindHwmonDir returns the name of the first entry of dir starting with
// "hwmon", or an empty string.
func (r *Reader) FindHwmonDir(dir string) string {
	entries, err := afero.ReadDir(r.fs, r.resolve(dir))
	if err != nil {
		zap.L().Debug("error listing hwmon directory", zap.String("path", dir), zap.Error(err))
		return ""
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "hwmon") {
			return e.Name()
		}
	}
	return ""
}

// HwmonPath joins dir, its hwmon subdirectory and file
func (r *Reader) HwmonPath(dir, file string) string {
	return filepath.Join(dir, r.FindHwmonDir(dir), file)
}

// ReadMilliCelsius reads a value in millidegrees and returns it in degrees
// rounded to three decimals.
func (r *Reader) ReadMilliCelsius(path string) (float64, bool) {
	raw, ok := r.ReadText(path)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		zap.L().Debug("error parsing sysfs attribute", zap.String("path", path), zap.String("value", raw), zap.Error(err))
		return 0, false
	}
	return Round3(v / 1000), true
}

// Round3 rounds a reading to the nearest thousandth
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
