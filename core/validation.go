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

import "fmt"

// ValidateProjectRecord validates a ProjectRecord according to domain rules.
//
// Validation rules:
//   - ID must not be empty (identity of the record)
//   - Title must not be empty (scraper drops title-less entries upstream)
//
// NOT validated:
//   - URL, Summary, Description, Authors, Topics, Date, Status (optional,
//     the scraper leaves them empty when the source page omits them)
func ValidateProjectRecord(record *ProjectRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidProjectRecord)
	}

	if record.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProjectRecord, ErrEmptyRecordID)
	}

	if record.Title == "" {
		return fmt.Errorf("%w: %w (id %s)", ErrInvalidProjectRecord, ErrEmptyTitle, record.ID)
	}

	return nil
}

// ValidateProjectRecords validates every record in the slice, reporting the
// first failure with its position.
func ValidateProjectRecords(records []*ProjectRecord) error {
	for i, record := range records {
		if err := ValidateProjectRecord(record); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
