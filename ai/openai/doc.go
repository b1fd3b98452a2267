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


// Package openai implements ai.Embedder against OpenAI-compatible APIs.
//
// It works with any service exposing the OpenAI embeddings endpoint,
// including Ollama (serving all-minilm class models), LocalAI, vLLM, and
// OpenAI itself. Authentication uses a dummy token by default since local
// services typically don't require one.
package openai
