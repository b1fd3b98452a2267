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


// Package storage persists the scraped project records.
//
// The record file is the handoff point between the scraping collaborator and
// the search core: a single JSON array of project objects. The store loads
// and validates that file, and writes it back atomically (temp file + rename)
// so readers never observe a truncated file.
//
// # Error Semantics
//
//   - ErrDataMissing: no record file yet; recoverable by scraping or seeding
//   - ErrDataCorrupt: unparseable file or invalid record; wraps the cause
//
// Both are sentinel errors matched with errors.Is.
package storage
