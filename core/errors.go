// Copyright 2025 Coldbrook Labs
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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidProjectRecord indicates a ProjectRecord failed validation.
	ErrInvalidProjectRecord = errors.New("invalid project record")

	// ErrEmptyRecordID indicates the ID field is empty.
	ErrEmptyRecordID = errors.New("record id cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("record title cannot be empty")

	// ErrDimensionMismatch indicates a vector does not match the index's
	// embedding dimension. This is a fatal misconfiguration (wrong model or
	// stale cache) and must not be swallowed.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
