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


// Package index builds and persists the embedding index.
//
// The Builder maps each project record to a fixed-width vector by embedding
// its assembled text (title, summary, description, authors, topics, status
// in that order) through the configured model. Embedding calls run batched
// on a bounded worker pool with retry, but Build itself blocks until every
// record is embedded.
//
// The persisted cache stores the record-id set the vectors were computed
// against, fingerprinted with BLAKE2b. Load compares that fingerprint with
// the current record set and returns ErrCacheMiss on any mismatch, which
// forces a full rebuild. There is no incremental update path: when the
// upstream record set shrinks or grows, the whole index is rebuilt rather
// than patched.
package index
