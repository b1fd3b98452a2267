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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *ProjectRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &ProjectRecord{
				ID:      "p1",
				Title:   "COVID-19 Vaccine Effectiveness in Elderly Populations",
				URL:     "https://www.opensafely.org/project/covid-vaccine-elderly",
				Summary: "Study of vaccine effectiveness in patients aged 65 and above.",
				Status:  "Completed",
			},
			wantErr: nil,
		},
		{
			name: "minimal valid record",
			record: &ProjectRecord{
				ID:    "p2",
				Title: "Mental Health Outcomes During Pandemic Lockdowns",
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidProjectRecord,
		},
		{
			name: "empty id",
			record: &ProjectRecord{
				Title: "Untitled study",
			},
			wantErr: ErrEmptyRecordID,
		},
		{
			name: "empty title",
			record: &ProjectRecord{
				ID: "p3",
			},
			wantErr: ErrEmptyTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidProjectRecord)
			}
		})
	}
}

func TestValidateProjectRecords(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		records := []*ProjectRecord{
			{ID: "p1", Title: "First"},
			{ID: "p2", Title: "Second"},
		}
		assert.NoError(t, ValidateProjectRecords(records))
	})

	t.Run("reports failing position", func(t *testing.T) {
		records := []*ProjectRecord{
			{ID: "p1", Title: "First"},
			{ID: "", Title: "No id"},
		}
		err := ValidateProjectRecords(records)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyRecordID)
		assert.Contains(t, err.Error(), "record 1")
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.NoError(t, ValidateProjectRecords(nil))
	})
}
