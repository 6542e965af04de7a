// Copyright 2025 the k8s-generator Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Level is the closed set of layers a ValidationError can originate from.
type Level string

const (
	LevelStructural Level = "structural"
	LevelSemantic   Level = "semantic"
	LevelPolicy     Level = "policy"
)

// ValidationError is the uniform shape every validator layer emits.
// FieldPath, Message and Suggestion are all required to be non-blank;
// NewValidationError panics on a blank Suggestion because a validator that
// cannot say how to fix its own complaint is a bug in the validator, not a
// recoverable runtime condition.
type ValidationError struct {
	FieldPath  string
	Level      Level
	Message    string
	Suggestion string
}

func NewValidationError(path *field.Path, level Level, message, suggestion string) *ValidationError {
	if message == "" {
		panic("model: ValidationError requires a non-blank message")
	}
	if suggestion == "" {
		panic("model: ValidationError requires a non-blank suggestion")
	}
	return &ValidationError{
		FieldPath:  path.String(),
		Level:      level,
		Message:    message,
		Suggestion: suggestion,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: [%s] %s (%s)", e.FieldPath, e.Level, e.Message, e.Suggestion)
}

// ValidationResult is an accumulating, non-short-circuiting error set.
// Each validator layer returns one; the driver merges and inspects it.
type ValidationResult struct {
	Errors []*ValidationError
}

func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r ValidationResult) WithError(e *ValidationError) ValidationResult {
	errs := make([]*ValidationError, 0, len(r.Errors)+1)
	errs = append(errs, r.Errors...)
	errs = append(errs, e)
	return ValidationResult{Errors: errs}
}

func (r ValidationResult) Merge(other ValidationResult) ValidationResult {
	if len(other.Errors) == 0 {
		return r
	}
	errs := make([]*ValidationError, 0, len(r.Errors)+len(other.Errors))
	errs = append(errs, r.Errors...)
	errs = append(errs, other.Errors...)
	return ValidationResult{Errors: errs}
}
