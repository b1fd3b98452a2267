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


package storage

import "errors"

var (
	// ErrDataMissing indicates that no record file exists yet.
	// Recoverable by running the scraper (or the seeder).
	ErrDataMissing = errors.New("record file missing")

	// ErrDataCorrupt indicates the record file is malformed or contains
	// records that fail validation. The user must rescrape or fix the file.
	ErrDataCorrupt = errors.New("record file corrupt")
)
