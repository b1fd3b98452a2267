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


// Package mock provides a deterministic test double for ai.Embedder.
//
// The mock embedder derives vectors from an FNV hash of the input text, so
// identical text always produces identical vectors. Tests that need semantic
// control (e.g. forcing one record to rank above another) inject custom
// behavior via the function fields.
package mock
