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


// Package search ranks project records against a query.
//
// The Ranker embeds the query with the same model the index was built with
// and scores every record by cosine similarity. Results are sorted by
// descending score with stable tie-breaking on original record order and
// truncated to the requested top-k. The ranking itself is bounded in-memory
// arithmetic over at most a few hundred records; the only external call is
// the query embedding.
package search
